package main

import "os"

// @title        Issues API
// @version      1.0
// @description  Function handlers for the issue list: create, list, delete account and keep-alive.
// @BasePath     /.netlify/functions
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	os.Exit(Execute())
}
