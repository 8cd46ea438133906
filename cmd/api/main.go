package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// @title           ProAssignment API
// @version         1.0
// @description     Assignment lifecycle, earnings ledger and payments backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Errorf("[cmd] %v", err)
		os.Exit(1)
	}
}
