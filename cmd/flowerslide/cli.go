package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"github.com/medscafe/flowerslide/internal/api"
	"github.com/medscafe/flowerslide/internal/config"
	"github.com/medscafe/flowerslide/internal/product"
	"github.com/medscafe/flowerslide/internal/publish"
	"github.com/medscafe/flowerslide/internal/slide"
)

// sampleProducts is rendered when render is called without --products.
var sampleProducts = []product.Entry{
	{Strain: "Blue Dream", Brand: "Meds Cafe", Grams: "3.5g", DaysSince: "Harvested 5 days ago"},
	{Strain: "OG Kush", Brand: "Meds Cafe", Grams: "7g", DaysSince: "Harvested 3 days ago"},
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg config.Config) *cli.App {
	app := &cli.App{
		Name:    "flowerslide",
		Usage:   "Render flower harvest slides and publish them for CMS embedding",
		Version: Version,
		Commands: []*cli.Command{
			renderCmd(cfg),
			serveCmd(cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func newRenderer(cfg config.Config) (*slide.Renderer, error) {
	pub, err := publish.NewGitHubPublisher(cfg.GitHub)
	if err != nil {
		return nil, err
	}
	return slide.NewRenderer(cfg, pub), nil
}

// renderCmd creates the render command.
func renderCmd(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render, publish, and write the embed descriptor for one store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "store", Aliases: []string{"s"}, Value: "Cheboygan", Usage: "Store name"},
			&cli.StringFlag{Name: "products", Aliases: []string{"p"}, Usage: "CSV file with strain,brand,grams,days_since columns (sample products if omitted)"},
		},
		Action: func(c *cli.Context) error {
			products := sampleProducts
			if path := c.String("products"); path != "" {
				loaded, err := product.LoadEntriesFromCSV(path)
				if err != nil {
					return err
				}
				products = loaded
			}
			r, err := newRenderer(cfg)
			if err != nil {
				return err
			}
			return runRender(c.Context, c.App.Writer, r, c.String("store"), products)
		},
	}
}

type slideRenderer interface {
	Render(ctx context.Context, storeName string, products []product.Entry) (*slide.EmbedDescriptor, error)
}

func runRender(ctx context.Context, w io.Writer, r slideRenderer, store string, products []product.Entry) error {
	if _, err := r.Render(ctx, store, products); err != nil {
		return err
	}
	fmt.Fprintf(w, "✅ Slide component generated for %s\n", store)
	fmt.Fprintf(w, "📄 Prismic embed data saved to %s\n", slide.EmbedFileName(store))
	fmt.Fprintf(w, "🖼️ Image uploaded to GitHub and saved as %s\n", slide.ImageFileName(store))
	return nil
}

// serveCmd creates the serve command.
func serveCmd(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the slide API over HTTP",
		Action: func(c *cli.Context) error {
			r, err := newRenderer(cfg)
			if err != nil {
				return err
			}
			engine := gin.Default()
			api.RegisterRoutes(engine, api.NewHandler(r, cfg.Slide.QRLink))

			addr := ":" + strconv.Itoa(cfg.Server.Port)
			fmt.Fprintf(c.App.Writer, "starting server on http://localhost%s\n", addr)
			if err := engine.Run(addr); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}
