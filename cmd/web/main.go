// @title           disccount API
// @version         1.0
// @description     Accounts, shopping lists, cards and price alerts for the disccount app.
// @host            localhost:4000
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

package main

import (
	"disccount_backend/internal/app"

	_ "disccount_backend/docs"
)

func main() {
	app.Run()
}
