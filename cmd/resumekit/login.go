package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/resumekit"
)

// Run executes the login status command.
func (c *LoginStatusCmd) Run(deps *Dependencies) error {
	st, err := deps.Guard.Status(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resumekit.ErrorMessage(err))
		return err
	}
	printStatus(deps.Stdout, st)
	return nil
}

// Run executes the login fail command.
func (c *LoginFailCmd) Run(deps *Dependencies) error {
	st, err := deps.Guard.RecordFailure(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resumekit.ErrorMessage(err))
		return err
	}
	printStatus(deps.Stdout, st)
	return nil
}

// Run executes the login succeed command.
func (c *LoginSucceedCmd) Run(deps *Dependencies) error {
	if err := deps.Guard.RecordSuccess(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resumekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, "Failed attempts cleared.")
	return nil
}

func printStatus(w io.Writer, st resumekit.LoginStatus) {
	if st.Locked {
		fmt.Fprintf(w, "Locked until %s (%d minute(s) left)\n",
			st.LockedUntil.Local().Format(time.Kitchen), st.RemainingLockoutMinutes())
		return
	}
	fmt.Fprintf(w, "Open: %d failed attempt(s), %d remaining\n", st.Attempts, st.RemainingAttempts)
}
