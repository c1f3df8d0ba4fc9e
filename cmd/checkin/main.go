package main

import (
	"context"
	"zhuimi-checkin/cmd/checkin/commands"
	"zhuimi-checkin/lib/osutil"
)

func main() {
	ctx, stop := osutil.SignalContext(context.Background())
	defer stop()
	commands.ExecuteContext(ctx)
}
