package main

import (
	"github.com/jasonsal23/offroad-paracord/internal/app"
	"github.com/jasonsal23/offroad-paracord/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
