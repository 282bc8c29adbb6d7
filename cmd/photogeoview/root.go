package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/justyntemme/photogeoview/internal/app"
	"github.com/justyntemme/photogeoview/internal/debug"
	"github.com/justyntemme/photogeoview/internal/fs"
	"github.com/justyntemme/photogeoview/internal/photo"
	"github.com/justyntemme/photogeoview/internal/view"
)

// NewRootCmd builds the command tree. Without a subcommand the window opens.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "photogeoview [folder | photo...]",
		Short: "Browse folders of photos and their capture metadata",
		Long: "PhotoGeoView browses folders of photographs as a list, detail view or thumbnail grid,\n" +
			"showing camera, exposure and GPS metadata for the selected photo.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd, g, args)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "config file (default ~/.config/photogeoview/config.json)")
	pf.BoolVar(&g.debug, "debug", false, "verbose logging")
	pf.StringVar(&g.view, "view", "", "view mode: list, detail or grid")
	pf.StringVar(&g.sort, "sort", "", "sort key: name or date")
	pf.BoolVar(&g.desc, "desc", false, "sort descending")

	root.AddCommand(
		&cobra.Command{
			Use:   "open [folder | photo...]",
			Short: "Open a folder, or a set of photos as a flat list",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWindow(cmd, g, args)
			},
		},
		newLsCmd(g),
		newInfoCmd(g),
		newThumbCmd(g),
		&cobra.Command{
			Use:   "roots",
			Short: "List the locations offered in the sidebar",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, r := range fs.Roots() {
					cmd.Printf("%-12s %s\n", r.Name, r.Path)
				}
				return nil
			},
		},
	)
	return root
}

// classifyArgs splits the command line into a folder or a list of photos.
func classifyArgs(args []string) (dir string, photos []string, err error) {
	for _, a := range args {
		abs, err := filepath.Abs(a)
		if err != nil {
			return "", nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", nil, err
		}
		if info.IsDir() {
			if dir != "" || len(args) > 1 {
				return "", nil, fmt.Errorf("open either one folder or any number of photos")
			}
			dir = abs
			continue
		}
		photos = append(photos, abs)
	}
	return dir, photos, nil
}

func runWindow(cmd *cobra.Command, g *globalFlags, args []string) error {
	dir, photos, err := classifyArgs(args)
	if err != nil {
		return err
	}
	e, err := loadEnv(cmd, g)
	if err != nil {
		return err
	}
	manageConsole(g.debug)
	debug.Log(debug.APP, "starting window dir=%q photos=%d", dir, len(photos))

	picker := app.NewDialogPicker()
	b := app.NewBrowser(e.browserDeps(picker))
	o := app.NewOrchestrator(b, picker, e.cfg, g.debug)
	app.Main(o, app.Options{Initial: dir, Photos: photos}, func() {
		b.Close()
		e.Close()
	})
	return nil
}

func newLsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ls <folder>",
		Short: "Print a folder's entries in browser order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, g)
			if err != nil {
				return err
			}
			defer e.Close()

			entries, err := e.system().Discover(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			key, _ := view.ParseSortKey(e.cfg.Browser.SortKey)
			order, _ := view.ParseSortOrder(e.cfg.Browser.SortOrder)
			items := view.NewSorter(e.cfg.Browser.Locale).Sort(view.ItemsFromEntries(entries), key, order, true)
			for _, it := range items {
				cmd.Println(lsLine(it))
			}
			return nil
		},
	}
}

func lsLine(it view.Item) string {
	if it.IsDir {
		return fmt.Sprintf("%-10s %-16s %s/", "<dir>", "", it.Name)
	}
	date := ""
	if d, ok := it.Date(); ok {
		date = d.Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("%-10s %-16s %s", humanize.Bytes(uint64(max(it.Size, 0))), date, it.Name)
}

func newInfoCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info <photo>",
		Short: "Print a photo's resolved metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, g)
			if err != nil {
				return err
			}
			defer e.Close()

			rec, err := photo.NewResolver(e.generator()).Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printRecord(cmd, rec)
			return nil
		},
	}
}

func printRecord(cmd *cobra.Command, rec *photo.Record) {
	cmd.Printf("File:      %s\n", rec.Path)
	cmd.Printf("Size:      %s\n", humanize.Bytes(uint64(max(rec.FileSize, 0))))
	cmd.Printf("Modified:  %s\n", rec.ModTime.Format("2006-01-02 15:04:05"))
	cmd.Printf("Thumbnail: %s\n", thumbState(rec.Thumbnail))
	x := rec.Exif
	if x == nil {
		cmd.Println("EXIF:      none")
		return
	}
	if x.Width > 0 {
		cmd.Printf("Pixels:    %d x %d\n", x.Width, x.Height)
	}
	if x.HasDateTime() {
		cmd.Printf("Taken:     %s\n", x.DateTime.Format("2006-01-02 15:04:05"))
	}
	if x.Camera != nil {
		cmd.Printf("Camera:    %s %s\n", x.Camera.Make, x.Camera.Model)
	}
	if ex := x.Exposure; ex != nil {
		cmd.Printf("Exposure:  f/%.1f %s ISO %d %.0fmm\n", ex.Aperture, ex.ShutterSpeed, ex.ISO, ex.FocalLength)
	}
	if x.HasGPS() {
		cmd.Printf("GPS:       %.6f, %.6f\n", x.GPS.Lat, x.GPS.Lng)
		if x.GPS.Altitude != nil {
			cmd.Printf("Altitude:  %.1f m\n", *x.GPS.Altitude)
		}
	}
}

func thumbState(b []byte) string {
	if len(b) == 0 {
		return "unavailable"
	}
	return humanize.Bytes(uint64(len(b)))
}

func newThumbCmd(g *globalFlags) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "thumb <photo> -o <file.jpg>",
		Short: "Render a photo's thumbnail to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, g)
			if err != nil {
				return err
			}
			defer e.Close()

			data, err := e.generator().Generate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			cmd.Printf("wrote %s (%s)\n", out, humanize.Bytes(uint64(len(data))))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output JPEG file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
