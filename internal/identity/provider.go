package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Provider derives a checksummed identity from a seed string. The
// derivation itself is an external capability; implementations may shell
// out, call a service, or (for tests and degraded operation) echo the
// seed back.
type Provider interface {
	Identity(ctx context.Context, seed string) (string, error)
}

// SeedProvider is the trivial fallback provider: identity equals seed.
type SeedProvider struct{}

func (SeedProvider) Identity(_ context.Context, seed string) (string, error) {
	return seed, nil
}

// NodeProvider invokes the JavaScript helper library out of process via
// Node to compute the checksummed identity for a seed.
type NodeProvider struct {
	// HelperPath is the path to the JS helper exporting QubicHelper.
	HelperPath string

	// NodeBin is the node executable; "node" when empty.
	NodeBin string

	// Timeout bounds a single derivation; zero means no deadline beyond ctx.
	Timeout time.Duration
}

func (p *NodeProvider) Identity(ctx context.Context, seed string) (string, error) {
	if _, err := os.Stat(p.HelperPath); err != nil {
		return "", fmt.Errorf("identity helper not found at %s: %w", p.HelperPath, err)
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	prog, err := p.program(seed)
	if err != nil {
		return "", err
	}

	bin := p.NodeBin
	if bin == "" {
		bin = "node"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-e", prog)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		return "", fmt.Errorf("identity derivation failed: %v: %s", err, msg)
	}

	identity := strings.TrimSpace(stdout.String())
	if len(identity) != IdentityLength {
		return "", fmt.Errorf("identity has length %d, want %d", len(identity), IdentityLength)
	}
	return identity, nil
}

// program builds the Node one-liner. The helper is written for a browser
// runtime, so the shims below fill in self/window/crypto before loading it.
func (p *NodeProvider) program(seed string) (string, error) {
	helperJSON, err := json.Marshal(p.HelperPath)
	if err != nil {
		return "", fmt.Errorf("encoding helper path: %w", err)
	}
	seedJSON, err := json.Marshal(seed)
	if err != nil {
		return "", fmt.Errorf("encoding seed: %w", err)
	}

	return fmt.Sprintf(`
(async () => {
  const g = globalThis;
  if (typeof g.self === 'undefined') g.self = g;
  if (typeof g.window === 'undefined') g.window = g;
  if (!g.crypto || !g.crypto.subtle) {
    try { g.crypto = require('crypto').webcrypto; } catch (e) {}
  }
  if (typeof g.atob === 'undefined') g.atob = (s) => Buffer.from(s, 'base64').toString('binary');
  if (typeof g.btoa === 'undefined') g.btoa = (s) => Buffer.from(s, 'binary').toString('base64');

  const mod = require(%s);
  let QubicHelper = null;
  if (mod && typeof mod.QubicHelper === 'function') QubicHelper = mod.QubicHelper;
  else if (mod && mod.default && typeof mod.default.QubicHelper === 'function') QubicHelper = mod.default.QubicHelper;
  else if (typeof mod === 'function') QubicHelper = mod;
  if (!QubicHelper) throw new Error('QubicHelper class not found in exports');

  const helper = new QubicHelper();
  const seed = %s;
  const publicKey = helper.getIdentityBytes(seed);
  const identity = await helper.getIdentity(publicKey);
  if (typeof identity !== 'string' || identity.length !== %d) throw new Error('Invalid identity length');
  process.stdout.write(identity);
})().catch(e => { console.error(String(e && e.stack || e)); process.exit(1); });
`, helperJSON, seedJSON, IdentityLength), nil
}

// Resolve computes the address for a contract index. Provider failures and
// malformed results degrade to the raw seed; they never surface as errors.
func Resolve(ctx context.Context, p Provider, index int) string {
	seed := Seed(index)
	if p == nil {
		return seed
	}
	identity, err := p.Identity(ctx, seed)
	if err != nil || len(identity) != IdentityLength {
		return seed
	}
	return identity
}
