// Package docs provides generated OpenAPI documentation.
//
// formfill API
//
//	@title			formfill API
//	@version		1.0
//	@description	Form sessions that pre-fill their fields from a free-text description via a completion provider.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/formfill
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/formfill/serve.go -o . --outputTypes go --parseDependency --parseInternal
