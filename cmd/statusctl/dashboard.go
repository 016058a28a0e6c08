package main

import (
	"context"
	"encoding/json"
)

type DashboardCmd struct {
	User int `required:"" help:"User id."`
}

func (c *DashboardCmd) Run(ctx *Context) error {
	d, err := ctx.Stats.Dashboard(context.Background(), c.User)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(ctx.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
