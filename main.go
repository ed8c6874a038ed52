// Package main BookBee API.
//
// @title           BookBee API
// @version         1.0
// @description     Peer-to-peer book marketplace (catalog, cart, checkout, reputation, chat).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import "github.com/avnishka/BookBee/cmd"

func main() {
	cmd.Execute()
}
