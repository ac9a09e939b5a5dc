package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowGenerator_TwoStepsWithEdge(t *testing.T) {
	doc, err := testRegistry().Generate(KindWorkflow, productRequest(t))
	require.NoError(t, err)

	nodes := dig(t, doc.Body, "nodes").([]any)
	require.Len(t, nodes, 2)
	assert.Equal(t, scheduleStepName, dig(t, nodes[0], "name"))
	assert.Equal(t, "n8n-nodes-base.scheduleTrigger", dig(t, nodes[0], "type"))
	assert.Equal(t, "Fetch and Export Products", dig(t, nodes[1], "name"))
	assert.Equal(t, "n8n-nodes-base.httpRequest", dig(t, nodes[1], "type"))
	assert.Equal(t, "node-1", dig(t, nodes[0], "id"))
	assert.Equal(t, "node-2", dig(t, nodes[1], "id"))

	edges := dig(t, doc.Body, "connections", scheduleStepName, "main").([]any)
	require.Len(t, edges, 1)
	targets := edges[0].([]any)
	require.Len(t, targets, 1)
	assert.Equal(t, "Fetch and Export Products", dig(t, targets[0], "node"))

	url := dig(t, nodes[1], "parameters", "url").(string)
	assert.Contains(t, url, "/wp-json/wp/v2/products")

	fields := dig(t, nodes[1], "parameters", "fields").([]any)
	require.Len(t, fields, 2)
	assert.Equal(t, "price", dig(t, fields[0], "name"))
}

func TestWorkflowGenerator_UsesNodeDefinition(t *testing.T) {
	reg := testRegistry()
	req := productRequest(t)

	node, err := reg.Generate(KindNode, req)
	require.NoError(t, err)

	req.Node = node
	doc, err := reg.Generate(KindWorkflow, req)
	require.NoError(t, err)

	nodes := dig(t, doc.Body, "nodes").([]any)
	assert.Equal(t, "n8n-nodes-wordpress.wordpressProduct", dig(t, nodes[1], "type"))
	assert.Equal(t, OpGetAll, dig(t, nodes[1], "parameters", "operation"))
}

func TestWorkflowGenerator_RejectsWrongReferencedKind(t *testing.T) {
	reg := testRegistry()
	req := productRequest(t)

	zap, err := reg.Generate(KindZapier, req)
	require.NoError(t, err)

	req.Node = zap
	doc, err := reg.Generate(KindWorkflow, req)
	assert.ErrorIs(t, err, ErrNodeKind)
	assert.True(t, doc.Empty())
}
