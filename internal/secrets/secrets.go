// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials kept out of the config file. A secrets
// directory holds one plain-text file per secret; the filename is the key.
//
// Recognized keys: native-token (bearer token for the native computation
// service) and provider-contact (appended to the provider User-Agent, as
// the CDS and MPC services ask for a contact address).
package secrets

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/pkg/types"
)

// DefaultDir is the secrets directory, relative to the working directory.
const DefaultDir = ".secrets"

const (
	KeyNativeToken     = "native-token"
	KeyProviderContact = "provider-contact"
)

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty map. Unreadable files are logged and skipped.
func Load(dir string, log *zap.Logger) (map[string]string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrapf(err, "reading secrets directory %s", dir)
	}

	out := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("key", name), zap.Error(err))
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			out[name] = v
		}
	}
	return out, nil
}

// Apply fills credentials in cfg from secrets. Values already set in cfg
// win. It returns the keys it used.
func Apply(cfg *types.Config, secrets map[string]string) []string {
	var used []string
	if v, ok := secrets[KeyNativeToken]; ok && cfg.Compute.NativeToken == "" {
		cfg.Compute.NativeToken = v
		used = append(used, KeyNativeToken)
	}
	if v, ok := secrets[KeyProviderContact]; ok && !strings.Contains(cfg.Search.UserAgent, v) {
		ua := strings.TrimSpace(cfg.Search.UserAgent)
		if ua == "" {
			ua = "skyquery"
		}
		cfg.Search.UserAgent = ua + " (" + v + ")"
		used = append(used, KeyProviderContact)
	}
	return used
}
