package cli

import "fmt"

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Adapter.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized ritual storage at: %s\n", ctx.Adapter.DataPath())
	return nil
}
