// railguard — declarative guardrails for development workflows.
// Rules live in .railguard/rules/; the engine decides, callers enforce.
package main

import "github.com/railguard/railguard/internal/cli"

func main() {
	cli.Execute()
}
