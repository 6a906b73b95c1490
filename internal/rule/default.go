package rule

// StarterDocs are the rule documents written by init when a document
// of the same name does not already exist. They are ordinary user
// rules afterward: editable, disableable, deletable.
var StarterDocs = map[string]string{
	"warn-progress-not-staged.md": `---
name: warn-progress-not-staged
enabled: true
event: stage
file_pattern: \.(go|py|js|jsx|ts|tsx|rs|java|rb)$
action: warn
---

**Progress file not staged**

Consider updating .railguard/progress.md before committing.
This helps maintain session continuity.
`,

	"warn-dangerous-rm.md": `---
name: warn-dangerous-rm
enabled: true
event: bash
pattern: (?i)rm\s+-rf
action: warn
---

**Dangerous rm command detected!**

Please verify the path is correct before proceeding.
Consider using a safer approach or making a backup.
`,

	"warn-console-log.md": `---
name: warn-console-log
enabled: false
event: file
file_pattern: \.(jsx?|tsx?)$
pattern: console\.log\(
action: warn
---

**Debug code detected**

Remember to remove console.log before committing.
`,

	"block-force-push.md": `---
name: block-force-push
enabled: false
event: bash
pattern: git\s+push\s+(-f|--force)(\s|$)
action: block
---

**Force push blocked**

Force pushing rewrites shared history. Use --force-with-lease if you
really need this, and enable it deliberately.
`,
}
