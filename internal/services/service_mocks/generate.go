package service_mocks

//go:generate mockgen -destination=service_mocks.go -package=service_mocks chicago-crime-analysis/internal/services ChartRendererInterface,TableLoaderInterface

// This file contains the go:generate directive to generate mocks for the
// pipeline's chart and table collaborators. Reflect mode, so the generated
// package does not import services and services tests can use it.
// To regenerate the mocks, run:
//   go generate ./internal/services/service_mocks
