package main

import (
	"chatStream/cmd/app"
)

func main() {
	app.GetApp().LetsGo()
}
