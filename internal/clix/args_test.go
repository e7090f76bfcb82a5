package clix

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func runWithArgs(t *testing.T, check func(*cli.Command) error, args ...string) error {
	t.Helper()
	var got error
	cmd := &cli.Command{
		Name: "demo",
		Action: func(_ context.Context, cmd *cli.Command) error {
			got = check(cmd)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"demo"}, args...)))
	return got
}

func TestNoArgs(t *testing.T) {
	assert.NoError(t, runWithArgs(t, NoArgs))

	err := runWithArgs(t, NoArgs, "extra")
	require.EqualError(t, err, `Command "demo" does not support arguments.`)
}

func TestExactArgs(t *testing.T) {
	one := func(cmd *cli.Command) error { return ExactArgs(cmd, 1) }

	assert.NoError(t, runWithArgs(t, one, "1.0.0"))
	require.EqualError(t, runWithArgs(t, one),
		`Invalid number of arguments for command "demo": Expected 1, got 0`)
	require.EqualError(t, runWithArgs(t, one, "a", "b"),
		`Invalid number of arguments for command "demo": Expected 1, got 2`)
}

func TestFailed(t *testing.T) {
	err := Failed()
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Empty(t, err.Error())
}
