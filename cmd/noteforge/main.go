// Command noteforge generates structured study notes with a hosted language
// model, keeps the most recent ones, and shows or exports them.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/jcorbin/noteforge/internal/noteui"
)

func main() {
	var ui ui
	ui.args = []string{filepath.Base(os.Args[0])}
	ui.renderer = lipgloss.NewRenderer(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := noteui.CLIRequest(ctx).Serve(os.Stdout, &ui)
	stop()
	if err != nil {
		log.Fatalln(err)
	}
}
