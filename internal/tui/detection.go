package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvVars are set by common CI/CD systems.
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"GITLAB_CI",              // GitLab CI
	"CIRCLECI",               // CircleCI
	"TRAVIS",                 // Travis CI
	"JENKINS_HOME",           // Jenkins
	"BUILDKITE",              // Buildkite
	"BITBUCKET_BUILD_NUMBER", // Bitbucket Pipelines
	"DRONE",                  // Drone CI
	"SEMAPHORE",              // Semaphore CI
	"APPVEYOR",               // AppVeyor
	"CODEBUILD_BUILD_ID",     // AWS CodeBuild
	"TF_BUILD",               // Azure Pipelines
}

// isTerminal reports whether fd is a terminal. Tests replace it.
var isTerminal = func(fd uintptr) bool {
	return term.IsTerminal(int(fd)) //nolint:gosec // G115: fd is a small value, no overflow risk
}

// IsInteractive reports whether prompts and spinners may be shown: stdout
// must be a terminal and no CI environment may be detected.
func IsInteractive() bool {
	return IsTTY() && !InCI()
}

// IsTTY checks if stdout is a terminal.
func IsTTY() bool {
	return isTerminal(os.Stdout.Fd())
}

// InCI reports whether a CI environment variable is set.
func InCI() bool {
	for _, env := range ciEnvVars {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}
