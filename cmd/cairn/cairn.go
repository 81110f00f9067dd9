package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/pkg/errors"

	"ridgeline.dev/cairn/pkg/agent"
	"ridgeline.dev/cairn/pkg/catalog"
	"ridgeline.dev/cairn/pkg/cmd"
	"ridgeline.dev/cairn/pkg/config"
	"ridgeline.dev/cairn/pkg/lockfile"
	"ridgeline.dev/cairn/pkg/sourcepath"
)

func main() {
	c := cli.NewCLI("cairn", "0.1.0")
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"setup": func() (cli.Command, error) {
			return cmd.New(
				"setup",
				"create the workspace and show how this machine resolves",
				setupF,
			), nil
		},
		"resolve": func() (cli.Command, error) {
			return cmd.New(
				"resolve",
				"resolve a source path spec onto this machine",
				resolveF,
			), nil
		},
		"spec": func() (cli.Command, error) {
			return cmd.New(
				"spec",
				"build a source path spec from its parts",
				specF,
			), nil
		},
		"cache-name": func() (cli.Command, error) {
			return cmd.New(
				"cache-name",
				"show the directory name a repository url maps to",
				cacheNameF,
			), nil
		},
		"repos": func() (cli.Command, error) {
			return cmd.New(
				"repos",
				"list the configured repositories",
				reposF,
			), nil
		},
		"detect": func() (cli.Command, error) {
			return cmd.New(
				"detect",
				"find repository checkouts under a directory",
				detectF,
			), nil
		},
	}

	exitStatus, err := c.Run()
	if err != nil {
		log.Println(err)
	}

	os.Exit(exitStatus)
}

func setupF(ctx context.Context, opts struct{}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return errors.Wrapf(err, "Unable to create or load configuration directory")
	}

	fmt.Printf("Config: %s\n", cfg.Path())
	fmt.Printf("Workspace: %s\n", cfg.WorkspaceDir)
	fmt.Printf("Vcs Cache: %s\n", cfg.VcsCachePath())

	osName, osVersion, arch := agent.Platform()
	fmt.Printf("Platform: %s %s (%s)\n", osName, osVersion, arch)

	constraints := cfg.Agent().Constraints()

	var keys []string
	for k := range constraints {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	tw := tabwriter.NewWriter(os.Stdout, 4, 2, 1, ' ', 0)
	defer tw.Flush()

	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, constraints[k])
	}

	return nil
}

func resolveF(ctx context.Context, opts struct {
	Trace     bool   `long:"trace" description:"log in trace mode"`
	Dump      bool   `long:"dump" description:"dump the resolved source path"`
	Quiet     bool   `short:"q" long:"quiet" description:"print the on-disk path only"`
	Sep       string `long:"sep" description:"resolve for an agent with this path separator"`
	Workspace string `long:"workspace" description:"workspace directory of that agent"`

	Pos struct {
		Spec string `positional-arg-name:"spec"`
	} `positional-args:"yes"`
}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	level := hclog.Info

	if opts.Trace {
		level = hclog.Trace
	}

	L := hclog.New(&hclog.LoggerOptions{
		Name:  "cairn",
		Level: level,
	})

	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	var ag sourcepath.Agent = cfg.Agent()

	if opts.Sep != "" {
		ag = &agent.Static{Sep: opts.Sep, Dir: opts.Workspace}
	}

	L.Debug("resolving spec", "spec", opts.Pos.Spec, "repositories", cat.Len())

	sp, err := cat.Resolve(opts.Pos.Spec, ag)
	if err != nil {
		return err
	}

	if opts.Dump {
		spew.Dump(sp)
		return nil
	}

	if opts.Quiet {
		fmt.Println(sp.PathOnDisk())
		return nil
	}

	repoName := ""
	if r := sp.Repository(); r != nil {
		repoName = r.Name()
	}

	tw := tabwriter.NewWriter(os.Stdout, 4, 2, 1, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "Repository:\t%s\n", repoName)
	fmt.Fprintf(tw, "Branch:\t%s\n", sp.Branch())
	fmt.Fprintf(tw, "Path:\t%s\n", sp.RelativePath())
	fmt.Fprintf(tw, "On Disk:\t%s\n", sp.PathOnDisk())
	fmt.Fprintf(tw, "Spec:\t%s\n", sp.String())

	return nil
}

func specF(ctx context.Context, opts struct {
	Repo   string `short:"r" long:"repo" description:"repository name"`
	Branch string `short:"b" long:"branch" description:"branch name"`
	Path   string `short:"p" long:"path" description:"agent path, repository directory first"`
}) error {
	fmt.Println(sourcepath.BuildSourcePath(opts.Repo, opts.Branch, opts.Path))

	return nil
}

func cacheNameF(ctx context.Context, opts struct {
	Mirror bool `long:"mirror" description:"also print the hashed mirror directory"`

	Pos struct {
		URLs []string `positional-arg-name:"url"`
	} `positional-args:"yes" required:"yes"`
}) error {
	var cfg *config.Config

	if opts.Mirror {
		var err error

		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(os.Stdout, 4, 2, 1, ' ', 0)
	defer tw.Flush()

	for _, u := range opts.Pos.URLs {
		name, err := sourcepath.BuildPathFromURL(u)
		if err != nil {
			return err
		}

		if opts.Mirror {
			fmt.Fprintf(tw, "%s\t%s\n", name, agent.MirrorDir(cfg.WorkspaceDir, u))
		} else {
			fmt.Fprintf(tw, "%s\n", name)
		}
	}

	return nil
}

func reposF(ctx context.Context, opts struct{}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	ag := cfg.Agent()

	tw := tabwriter.NewWriter(os.Stdout, 4, 2, 1, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "NAME\tROOT\tURL\n")

	for _, r := range cat.All() {
		root, err := r.ResolveRoot(ag)
		if err != nil {
			root = "-"
		}

		name := r.Name
		if name == "" {
			name = "(default)"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, root, r.URL)
	}

	return nil
}

func detectF(ctx context.Context, opts struct {
	Trace bool `long:"trace" description:"log in trace mode"`
	JSON  bool `long:"json" description:"emit the entries as json"`
	Save  bool `long:"save" description:"add new entries to the config file"`

	Pos struct {
		Dir string `positional-arg-name:"dir"`
	} `positional-args:"yes"`
}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	level := hclog.Info

	if opts.Trace {
		level = hclog.Trace
	}

	L := hclog.New(&hclog.LoggerOptions{
		Name:  "cairn",
		Level: level,
	})

	dir := opts.Pos.Dir
	if dir == "" {
		dir = cfg.WorkspaceDir
	}

	d := catalog.NewDetector(L)

	found, err := d.Scan(ctx, dir)
	if err != nil {
		return err
	}

	if opts.Save {
		var showLock bool

		cleanup, err := lockfile.Take(ctx, cfg.Path()+".lock", func() {
			if !showLock {
				fmt.Printf("Lock detected, waiting...\n")
				showLock = true
			}
		})
		if err != nil {
			return err
		}

		defer cleanup()

		cat, err := cfg.Catalog()
		if err != nil {
			return err
		}

		var added int

		for _, entry := range found {
			if _, err := cat.Lookup(entry.Name); err == nil {
				continue
			}

			cfg.Repositories = append(cfg.Repositories, entry)
			added++
		}

		if added > 0 {
			err = cfg.Save()
			if err != nil {
				return err
			}
		}

		fmt.Printf("Added %d repositories to %s\n", added, cfg.Path())
	}

	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(found)
	}

	tw := tabwriter.NewWriter(os.Stdout, 4, 2, 1, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "NAME\tROOT\tURL\n")

	for _, entry := range found {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", entry.Name, entry.Root, entry.URL)
	}

	return nil
}
