// Package docs provides generated OpenAPI documentation.
//
// Slab API
//
//	@title			Slab API
//	@version		1.0
//	@description	VASP output post-processing API for OUTCAR, EIGENVAL and DOSCAR analysis.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/slab-tools/slab
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http
package docs

//go:generate swag init -g ../cmd/slab/serve.go -o ./swagger --parseDependency --parseInternal
