// Package main is the stratumctl CLI command itself.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/edaniels/golog"
	"github.com/urfave/cli/v2"

	"github.com/digimatspa/entwine/bigid"
	"github.com/digimatspa/entwine/config"
	"github.com/digimatspa/entwine/tree"
)

var cliLogger golog.Logger

func main() {
	app := &cli.App{
		Name:  "stratumctl",
		Usage: "interrogate a stored tree index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "metadata",
				Aliases:  []string{"m"},
				Required: true,
				Usage:    "path to the index's metadata document",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				cliLogger = golog.NewDebugLogger("stratumctl")
			} else {
				cliLogger = golog.NewLogger("stratumctl")
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "describe",
				Usage:  "print the depth bands and sparse threshold derived from the metadata",
				Action: describeCommand,
			},
			{
				Name:      "chunk-of",
				Usage:     "print the chunk a tree index or chunk number falls into",
				ArgsUsage: "<index>",
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:  "chunk-num",
						Usage: "resolve by chunk number instead of tree index",
					},
				},
				Action: chunkOfCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func describeCommand(c *cli.Context) error {
	cliLogger.Debugf("loading metadata from %s", c.String("metadata"))
	s, err := config.Load(c.String("metadata"))
	if err != nil {
		return err
	}

	out := struct {
		Dimensions       uint64 `json:"dimensions"`
		Factor           uint64 `json:"factor"`
		NullDepthEnd     uint64 `json:"nullDepthEnd"`
		BaseDepthEnd     uint64 `json:"baseDepthEnd"`
		ColdDepthEnd     uint64 `json:"coldDepthEnd"`
		ColdIndexBegin   string `json:"coldIndexBegin"`
		SparseDepthBegin uint64 `json:"sparseDepthBegin,omitempty"`
		Sparse           bool   `json:"sparse"`
		DynamicChunks    bool   `json:"dynamicChunks"`
		BaseChunkPoints  uint64 `json:"baseChunkPoints"`
		Subset           string `json:"subset,omitempty"`
	}{
		Dimensions:      s.Dimensions(),
		Factor:          s.Factor(),
		NullDepthEnd:    s.NullDepthEnd(),
		BaseDepthEnd:    s.BaseDepthEnd(),
		ColdDepthEnd:    s.ColdDepthEnd(),
		ColdIndexBegin:  s.ColdIndexBegin().String(),
		DynamicChunks:   s.DynamicChunks(),
		BaseChunkPoints: s.BaseChunkPoints(),
	}
	out.SparseDepthBegin, out.Sparse = s.SparseDepthBegin()
	if s.IsSubset() {
		out.Subset = s.SubsetPostfix()
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func chunkOfCommand(c *cli.Context) error {
	cliLogger.Debugf("loading metadata from %s", c.String("metadata"))
	s, err := config.Load(c.String("metadata"))
	if err != nil {
		return err
	}

	var ci tree.ChunkInfo
	if c.IsSet("chunk-num") {
		ci = s.GetInfoFromNum(c.Uint64("chunk-num"))
	} else {
		idxStr := c.Args().First()
		if idxStr == "" {
			return cli.Exit("either a tree index argument or --chunk-num is required", 1)
		}
		idx, err := bigid.FromString(idxStr)
		if err != nil {
			return err
		}
		ci = s.ChunkInfo(idx)
	}

	fmt.Fprintf(c.App.Writer,
		"depth=%d chunkId=%s chunkNum=%d chunkOffset=%d chunkPoints=%d\n",
		ci.Depth, ci.ChunkId.String(), ci.ChunkNum, ci.ChunkOffset, ci.ChunkPoints,
	)
	return nil
}
