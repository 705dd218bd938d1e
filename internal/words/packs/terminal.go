package packs

import (
	"github.com/vovakirdan/constellation/internal/registry"
	"github.com/vovakirdan/constellation/internal/words"
)

// Terminal returns a pack of shell and programming vocabulary.
func Terminal() words.Pack {
	return words.Pack{
		ID:    "terminal",
		Title: "Terminal",
		Lists: map[words.Tier][]string{
			words.TierEasy: {
				"ls", "cd", "cat", "pwd", "git", "vim", "grep", "sed",
				"awk", "make", "test", "exit", "echo", "kill", "ping", "curl",
				"tar", "ssh", "diff", "sort",
			},
			words.TierMedium: {
				"chmod", "mkdir", "export", "source", "branch", "commit", "rebase", "stash",
				"kernel", "daemon", "socket", "buffer", "thread", "signal", "mutex", "channel",
				"struct", "method", "pointer", "module",
			},
			words.TierHard: {
				"goroutine", "interface", "concurrency", "serialization", "middleware",
				"dependency", "environment", "permissions", "benchmark", "transaction",
				"filesystem", "compilation", "containerize", "orchestration",
			},
			words.TierBonus: {
				"sudo", "root", "shebang", "pipeline", "heredoc", "tmux",
				"unicode", "escape", "terminal", "prompt",
			},
		},
	}
}

func init() {
	registry.Register("terminal", Terminal)
}
