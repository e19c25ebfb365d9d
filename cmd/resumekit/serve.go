package main

import "fmt"

// Run executes the serve command. It blocks until the context is done or
// the listener fails.
func (c *ServeCmd) Run(deps *Dependencies) error {
	errc := make(chan error, 1)
	go func() {
		errc <- deps.Server.Listen(c.Addr)
	}()
	deps.Logger.Info("serving preview", "addr", c.Addr)
	fmt.Fprintf(deps.Stdout, "Preview server listening on %s\n", c.Addr)

	select {
	case err := <-errc:
		return err
	case <-deps.Ctx.Done():
		if err := deps.Server.Shutdown(); err != nil {
			return err
		}
		return <-errc
	}
}
