package template

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alnum = regexp.MustCompile(`^[A-Za-z0-9]+$`)

func TestWebhookGenerator_FreshSecretPerCall(t *testing.T) {
	reg := NewRegistry()
	req := productRequest(t)

	first, err := reg.Generate(KindWebhook, req)
	require.NoError(t, err)
	second, err := reg.Generate(KindWebhook, req)
	require.NoError(t, err)

	s1 := dig(t, first.Body, "webhook", "secret").(string)
	s2 := dig(t, second.Body, "webhook", "secret").(string)

	assert.NotEqual(t, s1, s2)
	for _, s := range []string{s1, s2} {
		assert.GreaterOrEqual(t, len(s), 32)
		assert.Regexp(t, alnum, s)
	}
	assert.Equal(t, first.Fields, second.Fields)
}

func TestWebhookGenerator_Registration(t *testing.T) {
	req := productRequest(t)
	req.TargetURL = "https://hooks.example.org/in"

	doc, err := testRegistry().Generate(KindWebhook, req)
	require.NoError(t, err)

	hook := dig(t, doc.Body, "webhook")
	assert.Equal(t, "https://hooks.example.org/in", dig(t, hook, "target_url"))
	assert.Equal(t, []any{"product.created", "product.updated", "product.deleted"}, dig(t, hook, "events"))
	assert.Equal(t, RetryMaxAttempts, dig(t, hook, "retry", "max_attempts"))
	assert.Equal(t, RetryIntervalSeconds, dig(t, hook, "retry", "interval_seconds"))
	assert.Equal(t, "hmac-sha256", dig(t, hook, "signature", "scheme"))

	schema := dig(t, doc.Body, "payload", "schema").(map[string]any)
	assert.Equal(t, "object", schema["type"])

	common := dig(t, doc.Body, "handlers", "common").(string)
	assert.True(t, strings.HasPrefix(common, "<?php"))
	assert.Contains(t, common, "'https://hooks.example.org/in'")
	assert.Contains(t, common, SignatureHeader)
	for _, ev := range []string{"created", "updated", "deleted"} {
		code := dig(t, doc.Body, "handlers", ev).(string)
		assert.NotContains(t, code, "<?php", ev)
		assert.Contains(t, code, "'product."+ev+"'")
	}
}

func TestWebhookGenerator_HandlersDeclareDispatcherOnce(t *testing.T) {
	doc, err := testRegistry().Generate(KindWebhook, productRequest(t))
	require.NoError(t, err)

	var plugin strings.Builder
	for _, name := range []string{"common", "created", "updated", "deleted"} {
		plugin.WriteString(dig(t, doc.Body, "handlers", name).(string))
	}
	code := plugin.String()
	assert.Equal(t, 1, strings.Count(code, "function wpbridge_product_dispatch("))
	assert.Equal(t, 1, strings.Count(code, "<?php"))
	assert.Contains(t, code, "function_exists('wpbridge_product_dispatch')")
}

func TestWebhookGenerator_CreatedFiresOnLeavingAutoDraft(t *testing.T) {
	doc, err := testRegistry().Generate(KindWebhook, productRequest(t))
	require.NoError(t, err)

	created := dig(t, doc.Body, "handlers", "created").(string)
	assert.Contains(t, created, "'transition_post_status'")
	assert.Contains(t, created, "array('new', 'auto-draft')")

	updated := dig(t, doc.Body, "handlers", "updated").(string)
	assert.Contains(t, updated, "$post_before->post_status")
}

func TestWebhookGenerator_UsesRestBase(t *testing.T) {
	req := productRequest(t)
	req.ContentType = "post"
	req.Metadata.Key = "post"
	req.Metadata.RestBase = "posts"

	doc, err := testRegistry().Generate(KindWebhook, req)
	require.NoError(t, err)

	common := dig(t, doc.Body, "handlers", "common").(string)
	assert.Contains(t, common, "'/wp/v2/posts/'")
	assert.NotContains(t, common, "'/wp/v2/post/'")
	assert.Contains(t, dig(t, doc.Body, "handlers", "created").(string), "'post.created'")
}

func TestWebhookGenerator_QuotesTargetURL(t *testing.T) {
	req := productRequest(t)
	req.TargetURL = `https://hooks.example.org/in?tag=it's\x`

	doc, err := testRegistry().Generate(KindWebhook, req)
	require.NoError(t, err)

	common := dig(t, doc.Body, "handlers", "common").(string)
	assert.Contains(t, common, `wp_remote_post('https://hooks.example.org/in?tag=it\'s\\x',`)
	assert.Equal(t, `https://hooks.example.org/in?tag=it's\x`, dig(t, doc.Body, "webhook", "target_url"))
}

func TestWebhookGenerator_DefaultTarget(t *testing.T) {
	doc, err := testRegistry().Generate(KindWebhook, productRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/webhooks/product", dig(t, doc.Body, "webhook", "target_url"))
}

func TestNewSecret(t *testing.T) {
	s, err := NewSecret(bytes.NewReader(bytes.Repeat([]byte{0x01}, 1024)), 32)
	require.NoError(t, err)
	assert.Len(t, s, 32)
	assert.Regexp(t, alnum, s)

	_, err = NewSecret(bytes.NewReader(nil), 32)
	assert.Error(t, err)
}

func TestSafeIdent(t *testing.T) {
	assert.Equal(t, "wp_block", safeIdent("wp-block"))
	assert.Equal(t, "product", safeIdent("product"))
}
