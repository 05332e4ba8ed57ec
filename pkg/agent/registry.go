package agent

import (
	"context"
	"log/slog"
)

// ResolveModel probes the provider's model registry once and picks the model
// every later generation call will use: the configured primary when
// installed, otherwise the fallback. A failed probe or no installed match
// reports not-ok; the failure is logged and swallowed so the caller degrades
// to synthetic analysis instead of aborting. There are no retries.
func ResolveModel(ctx context.Context, provider Provider, primary, fallback string, logger *slog.Logger) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, registryProbeTimeout)
	defer cancel()

	names, err := provider.ListModels(ctx)
	if err != nil {
		logger.Warn("model registry probe failed, AI features disabled", "error", err)
		return "", false
	}

	installed := make(map[string]bool, len(names))
	for _, n := range names {
		installed[n] = true
	}

	switch {
	case primary != "" && installed[primary]:
		return primary, true
	case fallback != "" && installed[fallback]:
		logger.Info("primary model not installed, using fallback",
			"primary", primary, "fallback", fallback)
		return fallback, true
	default:
		logger.Warn("no configured model installed",
			"primary", primary, "fallback", fallback, "installed", names)
		return "", false
	}
}
