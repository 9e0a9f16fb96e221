package main

import "github.com/adanyl0v/go-planner/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	app.MustConnectMongo()
	defer app.DisconnectMongo()

	app.MustListenAndServeHTTP()
}
