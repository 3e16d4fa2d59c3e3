// Package report renders a document graph as a self-contained interactive
// HTML page built on vis-network, with the discovered insight path
// highlighted.
package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/meridian-research/triad/pkg/common"
)

// Options tune the highlight animation.
type Options struct {
	PulseEnabled   bool
	PulseAmplitude float64
	PulseSpeed     float64
}

// DefaultOptions returns the stock animation settings.
func DefaultOptions() Options {
	return Options{
		PulseEnabled:   true,
		PulseAmplitude: 15,
		PulseSpeed:     0.06,
	}
}

type visNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group string `json:"group"`
	Title string `json:"title"`
}

type visEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

type templateData struct {
	NodesJSON          template.JS
	EdgesJSON          template.JS
	HighlightNodesJSON template.JS
	PulseEnabled       bool
	PulseAmplitude     float64
	PulseSpeed         float64
}

// Render produces a standalone HTML document visualizing the graph. The
// insight's top path, when present, is highlighted and pulsed.
func Render(g common.DocumentGraph, insight common.Insight, opts Options) (string, error) {
	nodes := make([]visNode, 0, len(g.Nodes))
	for _, node := range g.Nodes {
		nodes = append(nodes, visNode{
			ID:    node.ID,
			Label: node.ID,
			Group: node.Type,
			Title: fmt.Sprintf("Type: %s", node.Type),
		})
	}
	edges := make([]visEdge, 0, len(g.Relationships))
	for _, rel := range g.Relationships {
		edges = append(edges, visEdge{From: rel.Source, To: rel.Target, Label: rel.Type})
	}

	highlight := []string{}
	if insight.Found && len(insight.Paths) > 0 {
		highlight = strings.Split(insight.Paths[0], " → ")
	}

	nodesJSON, err := json.Marshal(nodes)
	if err != nil {
		return "", fmt.Errorf("failed to encode nodes: %w", err)
	}
	edgesJSON, err := json.Marshal(edges)
	if err != nil {
		return "", fmt.Errorf("failed to encode edges: %w", err)
	}
	highlightJSON, err := json.Marshal(highlight)
	if err != nil {
		return "", fmt.Errorf("failed to encode highlight path: %w", err)
	}

	var builder strings.Builder
	err = reportTemplate.Execute(&builder, templateData{
		NodesJSON:          template.JS(nodesJSON),
		EdgesJSON:          template.JS(edgesJSON),
		HighlightNodesJSON: template.JS(highlightJSON),
		PulseEnabled:       opts.PulseEnabled,
		PulseAmplitude:     opts.PulseAmplitude,
		PulseSpeed:         opts.PulseSpeed,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return builder.String(), nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>AI Knowledge Graph</title>
    <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/vis-network/9.1.2/dist/dist/vis-network.min.css" />
    <script type="text/javascript" src="https://cdnjs.cloudflare.com/ajax/libs/vis-network/9.1.2/dist/vis-network.min.js"></script>
    <style>
        html, body {
            margin: 0; padding: 0; overflow: hidden;
            width: 100%; height: 100%; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
        }
        #network {
            width: 100%; height: 100vh;
            background-color: #0D1117;
            position: absolute; top: 0; left: 0; z-index: 1;
        }
    </style>
</head>
<body>
    <div id="network"></div>

    <script type="text/javascript">
        var nodes, edges, network;

        function drawGraph() {
            nodes = new vis.DataSet({{.NodesJSON}});
            edges = new vis.DataSet({{.EdgesJSON}});

            var container = document.getElementById('network');
            var data = { nodes: nodes, edges: edges };

            var options = {
                nodes: {
                    shape: 'dot',
                    borderWidth: 2,
                    font: { color: '#e0e0e0', size: 14, strokeWidth: 0 }
                },
                edges: {
                    width: 1.5,
                    color: { color: 'rgba(100, 100, 100, 0.6)' },
                    arrows: { to: { enabled: true, scaleFactor: 0.8, type: 'arrow' } },
                    smooth: { type: 'dynamic', roundness: 0.5 }
                },
                physics: {
                    forceAtlas2Based: {
                        gravitationalConstant: -40,
                        centralGravity: 0.005,
                        springLength: 250,
                        springConstant: 0.1,
                        avoidOverlap: 0.9
                    },
                    solver: 'forceAtlas2Based',
                    stabilization: { iterations: 300 }
                },
                interaction: {
                    hover: true,
                    tooltipDelay: 200,
                    dragNodes: true
                }
            };

            network = new vis.Network(container, data, options);
            setupHighlighting();
        }

        function setupHighlighting() {
            const HIGHLIGHT_NODES = {{.HighlightNodesJSON}};
            const PULSE_ENABLED = {{.PulseEnabled}};
            const PULSE_AMPLITUDE = {{.PulseAmplitude}};
            const PULSE_STEP = {{.PulseSpeed}};

            function applyGlobalStyles() {
                const deg = {};
                edges.get().forEach(e => { deg[e.from] = (deg[e.from] || 0) + 1; deg[e.to] = (deg[e.to] || 0) + 1; });
                let maxDeg = Math.max(...Object.values(deg).map(Number), 1);
                const updates = nodes.get().map(n => {
                    const d = deg[n.id] || 0;
                    const size = Math.round(10 + (d / maxDeg) * 20);
                    let paletteColor = '#888888';
                    const g = String(n.group).toLowerCase();
                    if (g.includes('process')) paletteColor = '#F9A825';
                    else if (g.includes('material')) paletteColor = '#E91E63';
                    else if (g.includes('device')) paletteColor = '#FF5722';
                    else if (g.includes('technology')) paletteColor = '#03A9F4';
                    else if (g.includes('chemical')) paletteColor = '#9C27B0';
                    return {
                        id: n.id, size: size, color: { background: paletteColor, border: paletteColor },
                        shadow: { enabled: true, color: paletteColor, size: 25, x: 0, y: 0 }
                    };
                });
                nodes.update(updates);
            }

            function applyHighlight() {
                if (HIGHLIGHT_NODES.length === 0) return;
                const highlightColor = '#00FFC4';
                nodes.update(HIGHLIGHT_NODES.map(id => ({
                    id: id,
                    color: { background: highlightColor, border: highlightColor },
                    shadow: { enabled: true, color: highlightColor, size: 60 },
                    font: { size: 18 }
                })));
                const allEdges = edges.get();
                const edgeUpdates = [];
                for (let i = 0; i < HIGHLIGHT_NODES.length - 1; i++) {
                    const fromNode = HIGHLIGHT_NODES[i];
                    const toNode = HIGHLIGHT_NODES[i + 1];
                    const foundEdges = allEdges.filter(e => (e.from === fromNode && e.to === toNode) || (e.from === toNode && e.to === fromNode));
                    foundEdges.forEach(edge => {
                        edgeUpdates.push({
                            id: edge.id, color: { color: highlightColor }, width: 2.5,
                            shadow: { enabled: true, color: highlightColor, size: 30 }
                        });
                    });
                }
                edges.update(edgeUpdates);

                if (!PULSE_ENABLED) return;

                const baseSizes = {};
                HIGHLIGHT_NODES.forEach(id => baseSizes[id] = nodes.get(id)?.size || 20);

                let phase = 0;
                function raf() {
                    phase += PULSE_STEP;
                    const updates = HIGHLIGHT_NODES.map(id => ({
                        id: id, size: baseSizes[id] + PULSE_AMPLITUDE * Math.pow(Math.abs(Math.sin(phase)), 8)
                    }));
                    nodes.update(updates);
                    window.requestAnimationFrame(raf);
                }
                raf();
            }

            function onReady() {
                applyGlobalStyles();
                applyHighlight();
            }

            network.once('stabilizationIterationsDone', onReady);
        }

        drawGraph();
    </script>
</body>
</html>
`))
