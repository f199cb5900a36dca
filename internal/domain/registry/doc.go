// Package registry keeps the apps a desktop can launch.
//
// Components:
//   - Registry: package id to immutable descriptor, plus the launcher
//     projection published to desktop views on every registration
//   - Manifest: the YAML/TOML/JSON (or HTTP) form of a descriptor
//   - Seeder: registers every manifest found below the apps directory
//
// Display names are stripped of markup. Icons given as image files next
// to a manifest are inlined as data URIs.
//
// Example Usage:
//
//	reg := registry.NewRegistry().WithPublisher(hub)
//	result, err := registry.NewSeeder(reg, "./apps").SeedApps()
//	desc, err := reg.Lookup("calc")
package registry
