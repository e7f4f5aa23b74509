package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/procfairings/internal/config"
	"github.com/Faultbox/procfairings/internal/logger"
	"github.com/Faultbox/procfairings/internal/payload"
	"github.com/Faultbox/procfairings/pkg/fairing"
	"github.com/Faultbox/procfairings/pkg/meshio"
)

// session is the state shared by the commands that work on a scene.
type session struct {
	cfg *config.Config
	doc *payload.Document
	asm *fairing.Assembly

	scenePath string
}

// open parses the shared flags, sets up logging and loads the optional scene
// named by the first positional argument.
func open(fs *flag.FlagSet, args []string, needScene bool) (*session, error) {
	f := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg, err := config.Load(f)
	if err != nil {
		return nil, err
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
		fileCfg.JSON = cfg.Logging.JSON
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, true); err != nil {
		return nil, err
	}
	for _, e := range multierr.Errors(cfg.Validate()) {
		logger.Warn("config", zap.Error(e))
	}

	s := &session{cfg: cfg, asm: cfg.Assembly(), doc: &payload.Document{}}
	switch {
	case fs.NArg() > 0:
		doc, err := payload.Load(fs.Arg(0))
		if err != nil {
			return nil, err
		}
		s.doc = doc
		s.scenePath = fs.Arg(0)
		if err := doc.Apply(s.asm); err != nil {
			for _, e := range multierr.Errors(err) {
				logger.Warn("payload item skipped", zap.Error(e))
			}
		}
		logger.Debug("payload loaded", zap.String("path", fs.Arg(0)), zap.Int("items", len(s.asm.Payload)))
	case needScene:
		return nil, fmt.Errorf("%w: %s needs a scene file", errUsage, fs.Name())
	}
	return s, nil
}

// recalculate runs the pipeline. A panel that fails to rebuild keeps its
// previous mesh; the rest of the result is still usable.
func (s *session) recalculate() *fairing.Result {
	res, err := s.asm.Recalculate()
	if err != nil {
		logger.Warn("some panels were not rebuilt", zap.Error(err))
	}
	return res
}

func cmdProfile(args []string, out io.Writer) error {
	s, err := open(flag.NewFlagSet("profile", flag.ContinueOnError), args, true)
	if err != nil {
		return err
	}
	prof, _ := s.asm.Fit()

	fmt.Fprintf(out, "Buckets: %d (step %g, offset %g)\n", prof.Len(), prof.Step, prof.Offset)
	fmt.Fprintf(out, "Max:     %.4f\n\n", prof.Max())
	for i, r := range prof.Radii {
		fmt.Fprintf(out, "%8.3f  %8.4f  %s\n", prof.BucketY(i), r, bar(r, prof.Max()))
	}
	return nil
}

func bar(r, maxR float32) string {
	if maxR <= 0 {
		return ""
	}
	return strings.Repeat("#", int(r/maxR*40))
}

func cmdFit(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("fit", flag.ContinueOnError)
	statePath := fs.String("state", "", "Write the persisted base state to this file")
	s, err := open(fs, args, false)
	if err != nil {
		return err
	}

	res := s.recalculate()

	env := res.Envelope
	mode := "auto"
	if !s.asm.Base.AutoShape {
		mode = "manual"
	}
	fmt.Fprintf(out, "Shape:      %s", mode)
	if env.Inline {
		fmt.Fprintf(out, ", inline (top %.3fm at %.3fm)", env.TopRad*2, env.TopY)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Base:       %.3fm (node size %d)\n", env.BaseRad*2, fairing.NodeSize(env.BaseRad*2))
	fmt.Fprintf(out, "Max size:   %.3fm\n", env.MaxRad*2)
	fmt.Fprintf(out, "Cylinder:   %.3fm .. %.3fm\n", env.CylStart, env.CylEnd)
	fmt.Fprintf(out, "Top:        %.3fm\n", env.Top(s.asm.Side.Cones.NoseHeightRatio))
	fmt.Fprintf(out, "Silhouette: %d points\n", len(res.Curve))
	if len(res.Panels) > 0 {
		c := res.Panels[0].Counts
		fmt.Fprintf(out, "Panels:     %d x %d segments, %d verts, %d tris each\n",
			len(res.Panels), s.asm.NumSegs(), c.TotalVerts, c.TotalFaces)
	}
	fmt.Fprintf(out, "Mass:       %s\n", fairing.FormatMass(res.TotalMass))
	fmt.Fprintf(out, "Cost:       %s\n", fairing.FormatCost(res.TotalCost))

	if *statePath != "" {
		data, err := fairing.MarshalState(s.asm.Base.State())
		if err != nil {
			return err
		}
		if err := os.WriteFile(*statePath, data, 0644); err != nil {
			return fmt.Errorf("writing state: %w", err)
		}
	}
	return nil
}

func cmdMesh(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("mesh", flag.ContinueOnError)
	format := fs.String("format", "", "Output format: obj, stl or json (default from config)")
	output := fs.String("o", "", "Output file (default fairing.<format> in the export dir)")
	s, err := open(fs, args, false)
	if err != nil {
		return err
	}
	if *format == "" {
		*format = s.cfg.Export.Format
	}
	path := *output
	if path == "" {
		path = filepath.Join(s.cfg.Export.Dir, "fairing."+*format)
	}

	res := s.recalculate()

	switch *format {
	case "stl":
		err = meshio.SaveSTL(path, res.Panels...)
	case "obj", "json":
		err = writeFile(path, func(w io.Writer) error {
			if *format == "obj" {
				return meshio.WriteOBJ(w, res.Panels...)
			}
			return meshio.WriteJSON(w, res.Panels...)
		})
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, *format)
	}
	if err != nil {
		return err
	}

	logger.Info("mesh exported", zap.String("path", path), zap.String("format", *format), zap.Int("panels", len(res.Panels)))
	fmt.Fprintln(out, path)
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return write(f)
}

func cmdShield(args []string, out io.Writer) error {
	s, err := open(flag.NewFlagSet("shield", flag.ContinueOnError), args, true)
	if err != nil {
		return err
	}
	res := s.recalculate()

	q := res.Shielding.Query(s.doc.ShieldingCandidates())
	if q.Disabled {
		fmt.Fprintln(out, "Shielding disabled: the inline top is open")
		return nil
	}
	fmt.Fprintf(out, "Shielded: %d\n", len(q.Shielded))
	for _, id := range q.Shielded {
		fmt.Fprintf(out, "  %s\n", id)
	}
	return nil
}

func cmdInit(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	path := fs.String("out", config.FileName, "Where to write the config")
	force := fs.Bool("force", false, "Overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if _, err := os.Stat(*path); err == nil && !*force {
		return fmt.Errorf("%s exists, use -force to overwrite", *path)
	}
	if err := config.Default().SaveTo(*path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintln(out, *path)
	return nil
}
