package template

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
	texttemplate "text/template"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/usestring/wpbridge-mcp/pkg/jsonschema"
)

// Webhook delivery settings.
const (
	SecretLength         = 40
	RetryMaxAttempts     = 3
	RetryIntervalSeconds = 60
	SignatureScheme      = "hmac-sha256"
	SignatureHeader      = "X-WPBridge-Signature"
)

const secretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Lifecycle events a webhook document covers.
var webhookEvents = []string{"created", "updated", "deleted"}

// webhookGenerator emits a webhook registration with a freshly issued
// shared secret and example handlers for each lifecycle event.
type webhookGenerator struct {
	env *env
}

func (g *webhookGenerator) Kind() Kind { return KindWebhook }

// NewSecret draws n characters uniformly from an alphanumeric alphabet.
func NewSecret(r io.Reader, n int) (string, error) {
	limit := big.NewInt(int64(len(secretAlphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(r, limit)
		if err != nil {
			return "", fmt.Errorf("generating secret: %w", err)
		}
		buf[i] = secretAlphabet[idx.Int64()]
	}
	return string(buf), nil
}

func (g *webhookGenerator) Generate(req Request) (*Document, error) {
	s, err := inspect(req.Records)
	if err != nil {
		return emptyDocument(KindWebhook), err
	}

	secret, err := NewSecret(g.env.random, SecretLength)
	if err != nil {
		return emptyDocument(KindWebhook), err
	}

	key := req.key()
	target := req.TargetURL
	if target == "" {
		target = "https://example.com/webhooks/" + key
	}

	events := make([]any, len(webhookEvents))
	for i, ev := range webhookEvents {
		events[i] = key + "." + ev
	}

	fields := make([]any, 0, len(s.editable))
	for _, f := range s.editable {
		fields = append(fields, object(
			kv{"name", f.Name},
			kv{"label", f.Label},
			kv{"type", f.Type},
		))
	}

	payload := object(kv{"fields", fields})
	if inferred := jsonschema.InferRecords(req.Records[:1], &jsonschema.Options{
		Title:          req.name(),
		StrictRequired: true,
	}); inferred != nil {
		schema, err := jsonschema.ToMap(inferred.Schema)
		if err != nil {
			return emptyDocument(KindWebhook), fmt.Errorf("encoding payload schema: %w", err)
		}
		payload.Set("schema", schema)
	}

	handlers, err := renderHandlers(handlerData{
		Key:      key,
		RestBase: req.path(),
		Func:     safeIdent(key),
		Target:   target,
		Header:   SignatureHeader,
	})
	if err != nil {
		return emptyDocument(KindWebhook), err
	}

	body := object(
		kv{"webhook", object(
			kv{"name", key + "_sync"},
			kv{"target_url", target},
			kv{"events", events},
			kv{"content_type", "application/json"},
			kv{"secret", secret},
			kv{"signature", object(
				kv{"scheme", SignatureScheme},
				kv{"header", SignatureHeader},
			)},
			kv{"retry", object(
				kv{"max_attempts", RetryMaxAttempts},
				kv{"interval_seconds", RetryIntervalSeconds},
			)},
			kv{"active", true},
		)},
		kv{"payload", payload},
		kv{"handlers", handlers},
		kv{"metadata", metadataBlock(g.env, req, s)},
	)

	return &Document{Kind: KindWebhook, Fields: s.editable, Body: body}, nil
}

// handlerData feeds the PHP handler templates. Values are quoted with the
// php function before they land in single-quoted literals.
type handlerData struct {
	Key, RestBase, Func, Target, Header string
}

var phpQuote = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

var handlerFuncs = texttemplate.FuncMap{"php": phpQuote.Replace}

// The common entry opens the PHP file and declares the dispatcher once; the
// event entries are hook registrations meant to follow it in the same file.
var handlerTemplates = []struct {
	name string
	tmpl *texttemplate.Template
}{
	{"common", parseHandler("common", `<?php
if (!function_exists('wpbridge_{{.Func}}_dispatch')) {
    function wpbridge_{{.Func}}_dispatch($event, $post_id) {
        $request = new WP_REST_Request('GET', '/wp/v2/{{php .RestBase}}/' . $post_id);
        $response = rest_do_request($request);
        $body = wp_json_encode(array(
            'event' => $event,
            'id' => $post_id,
            'data' => $response->get_data(),
        ));
        $signature = hash_hmac('sha256', $body, getenv('WPBRIDGE_WEBHOOK_SECRET'));
        wp_remote_post('{{php .Target}}', array(
            'headers' => array(
                'Content-Type' => 'application/json',
                '{{php .Header}}' => $signature,
            ),
            'body' => $body,
            'timeout' => 10,
        ));
    }
}
`)},
	{"created", parseHandler("created", `
add_action('transition_post_status', function ($new_status, $old_status, $post) {
    if ($post->post_type !== '{{php .Key}}' || !in_array($old_status, array('new', 'auto-draft'), true)) {
        return;
    }
    if (in_array($new_status, array('new', 'auto-draft', 'inherit', 'trash'), true)) {
        return;
    }
    wpbridge_{{.Func}}_dispatch('{{php .Key}}.created', $post->ID);
}, 10, 3);
`)},
	{"updated", parseHandler("updated", `
add_action('wp_after_insert_post', function ($post_id, $post, $update, $post_before) {
    if (!$update || $post->post_type !== '{{php .Key}}' || wp_is_post_revision($post_id)) {
        return;
    }
    if ($post->post_status === 'auto-draft' || ($post_before && in_array($post_before->post_status, array('new', 'auto-draft'), true))) {
        return;
    }
    wpbridge_{{.Func}}_dispatch('{{php .Key}}.updated', $post_id);
}, 10, 4);
`)},
	{"deleted", parseHandler("deleted", `
add_action('before_delete_post', function ($post_id, $post) {
    if ($post->post_type !== '{{php .Key}}') {
        return;
    }
    wpbridge_{{.Func}}_dispatch('{{php .Key}}.deleted', $post_id);
}, 10, 2);
`)},
}

func parseHandler(name, text string) *texttemplate.Template {
	return texttemplate.Must(texttemplate.New(name).Funcs(handlerFuncs).Parse(text))
}

// renderHandlers renders the dispatcher and one hook per lifecycle event.
func renderHandlers(data handlerData) (*orderedmap.OrderedMap[string, any], error) {
	out := object()
	for _, h := range handlerTemplates {
		var buf bytes.Buffer
		if err := h.tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("rendering %s handler: %w", h.name, err)
		}
		out.Set(h.name, buf.String())
	}
	return out, nil
}

func safeIdent(s string) string {
	b := []byte(s)
	for i, c := range b {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			b[i] = '_'
		}
	}
	return string(b)
}
