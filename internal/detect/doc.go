// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package detect finds comparison engines installed on the system.
//
// Detection is deliberately simple: an engine counts as installed when a
// file with its name exists in one of the lookup directories. Engines are
// probed in preference order, so the first installed engine is the best
// candidate for a default.
//
// # Key Types
//
//   - Detector: Probes a set of lookup directories for engine names
//   - EngineStatus: Per-engine diagnostic (location, executable bit)
//
// # Usage
//
//	installed := detect.Default().Installed(detect.PredefinedEngines)
//	if detect.IsURICompatible(cfg.TwoWay) {
//		// hand the engine file:// URIs instead of plain paths
//	}
package detect
