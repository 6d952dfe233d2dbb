package cli

import (
	"fmt"
	"os"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write to a file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}

	data, err := ctx.Engine.Export()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if c.Output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(c.Output, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported to %s\n", c.Output)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Export file to import." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	if err := ctx.Engine.Import(data); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %d habit(s) from %s\n", len(ctx.Engine.Habits()), c.File)
	return nil
}
