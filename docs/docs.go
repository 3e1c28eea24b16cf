// Package docs registra la especificación Swagger de la API (swaggo/swag).
// swagger.json se regenera con: swag init -g cmd/api/main.go -o docs
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo metadatos expuestos en /docs.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "stock-api",
	Description:      "Movimientos de stock entre bodegas: entradas, salidas y traslados.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
