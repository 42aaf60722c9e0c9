package main

import (
	"fmt"
	"strings"

	"github.com/25smoking/bamparse/internal/config"
	"github.com/25smoking/bamparse/internal/graph"
	"github.com/spf13/cobra"
)

const defaultGraphPath = "bam_graph.dot"

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "生成用户与程序的执行关系图 (Graphviz DOT)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGraph(cmd)
	},
}

// prepareGraphFlags forces DOT output and rejects any other requested format.
func prepareGraphFlags(outputChanged bool) error {
	if outputFormat != "" && strings.ToLower(outputFormat) != config.FormatDOT {
		return fmt.Errorf("graph 只支持 dot 格式，而不是 %q", outputFormat)
	}
	if !outputChanged {
		outputPath = defaultGraphPath
	} else if f := formatFromPath(outputPath); f != "" && f != config.FormatDOT {
		return fmt.Errorf("graph 输出文件 %s 的扩展名与 dot 格式不符", outputPath)
	}
	outputFormat = config.FormatDOT
	return nil
}

func runGraph(cmd *cobra.Command) error {
	if err := prepareGraphFlags(cmd.Flags().Changed("output")); err != nil {
		return err
	}
	rc, result, _, ok, err := extract(cmd.Context())
	if err != nil || !ok {
		return err
	}

	log.Info("正在生成执行关系图谱...")
	g := graph.Build(result)

	written, err := writeOutput(rc, result)
	if err != nil {
		return err
	}

	log.Infof("图谱已生成: %s (%d 个节点, %d 条边)", written, len(g.Nodes), len(g.Edges))
	log.Info("请使用 Graphviz 打开该文件，或访问 http://www.webgraphviz.com/ 进行查看。")
	return nil
}
