// Package api provides the REST API of ChainFirehose
// @title ChainFirehose API
// @version 1.0
// @description REST API for inspecting the block archive and fetching canonical blocks served by ChainFirehose
// @contact.name API Support
// @contact.url https://github.com/goran-ethernal/ChainFirehose
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /api/v1
// @schemes http https
package api
