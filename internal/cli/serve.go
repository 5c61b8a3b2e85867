package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxscope/pkg/buildinfo"
	"github.com/matzehuels/boxscope/pkg/server"
	"github.com/matzehuels/boxscope/pkg/store"
)

// serveCommand creates the serve command for the inspection API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		focus        string
		displayWidth float64
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the hierarchy over HTTP",
		Long: `Load the hierarchy into memory and serve the inspection API:

  GET    /tree?focus=ID          projected tree and focus offset
  GET    /hit?x=&y=&focus=ID     hit test a point in the focused frame
  GET    /offset/{id}?focus=ID   overlay offset of a node
  GET    /state                  focus, hover, selection and display
  PUT    /display {"width": N}   width the client draws the snapshot at
  POST   /focus {"id": ...}      set the focus target
  DELETE /focus                  clear the focus target
  POST   /select {"id": ...}     record a selection
  POST   /pointer/{event}        enter, move {"x","y"}, leave,
                                 context-menu-open, context-menu-closed

Pointer moves are scaled by snapshot width / display width. Without
--display-width or a configured width, the snapshot width is used, so moves
are read in snapshot units until a client sends PUT /display.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("display-width") {
				displayWidth = c.Config.Display.Width
			}
			return c.runServe(cmd.Context(), args[0], addr, focus, displayWidth)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&focus, "focus", "", "initial focus target")
	cmd.Flags().Float64Var(&displayWidth, "display-width", 0, "initial display width (default from config, else the snapshot width)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, path, addr, focus string, displayWidth float64) error {
	s, err := c.load(ctx, path, focus)
	if err != nil {
		return err
	}
	policy, err := c.Config.ZeroWidthPolicy()
	if err != nil {
		return err
	}

	width := serveDisplayWidth(s.store.State(), displayWidth)
	if width != displayWidth {
		loggerFromContext(ctx).Info("display width unset, using the snapshot width", "width", width)
	}
	s.store.SetDisplayWidth(width)

	srv := server.New(s.store, server.Options{
		Logger:    c.Logger,
		Interval:  c.Config.Interval(),
		ZeroWidth: policy,
	})

	c.Logger.Debug("starting server", "build", buildinfo.String())
	printSuccess("Serving %s", path)
	printKeyValue("Address", "http://"+addr)
	printNextStep("Try", "curl http://"+addr+"/tree")
	return srv.Run(ctx, addr)
}

// serveDisplayWidth returns width, or the snapshot width when width is not
// positive.
func serveDisplayWidth(st store.State, width float64) float64 {
	if width > 0 || st.Snapshot == nil {
		return width
	}
	return st.Snapshot.Width
}
