package main

import (
	"fmt"

	"github.com/fwojciec/pricecheck"
	"github.com/fwojciec/pricecheck/compare"
	pcgin "github.com/fwojciec/pricecheck/gin"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	var comparer pricecheck.Comparer = deps.Offline
	if !c.Offline && deps.Live != nil {
		comparer = &compare.Fallback{Primary: deps.Live, Secondary: deps.Offline}
	}

	srv := pcgin.NewServer(comparer, deps.Logger)
	srv.Matcher = deps.Offline
	if err := srv.Open(c.Addr); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on http://%s\n", srv.Addr())

	<-deps.Ctx.Done()
	return srv.Close()
}
