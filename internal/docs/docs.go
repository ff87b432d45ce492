// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o internal/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/pets": {
            "get": {
                "description": "Newest first. count is the total matching the filter, independent of skip and limit.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "List pets",
                "parameters": [
                    {"enum": ["dog","cat","bird","rabbit","fish","reptile","other"], "type": "string", "description": "Pet kind", "name": "kind", "in": "query"},
                    {"enum": ["available","pending","adopted"], "type": "string", "description": "Pet status", "name": "status", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size; values <= 0 mean 10", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Documents to skip; negative means 0", "name": "skip", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/application.PetListDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Create a pet",
                "parameters": [
                    {"description": "Pet payload", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/application.PetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/application.PetDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/pets/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Get a pet by id",
                "parameters": [
                    {"type": "string", "description": "Pet ObjectID (24 hex characters)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/application.PetDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            },
            "put": {
                "description": "Responds 304 with no body when the payload matches the stored pet.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Replace the fields of a pet",
                "parameters": [
                    {"type": "string", "description": "Pet ObjectID (24 hex characters)", "name": "id", "in": "path", "required": true},
                    {"description": "Pet payload", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/application.PetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/application.PetDTO"}},
                    "304": {"description": "not modified"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Delete a pet",
                "parameters": [
                    {"type": "string", "description": "Pet ObjectID (24 hex characters)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/application.DeleteResultDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/api/v1/admin/stats/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Pet counts by status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/application.PetStatsDTO"}}
                }
            }
        }
    },
    "definitions": {
        "application.PetRequest": {
            "type": "object",
            "required": ["kind", "name", "status"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "kind": {"type": "string", "enum": ["dog","cat","bird","rabbit","fish","reptile","other"]},
                "status": {"type": "string", "enum": ["available","pending","adopted"]},
                "breed": {"type": "string", "maxLength": 100},
                "age_months": {"type": "integer", "minimum": 0},
                "description": {"type": "string", "maxLength": 1000}
            }
        },
        "application.PetDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "kind": {"type": "string"},
                "status": {"type": "string"},
                "breed": {"type": "string"},
                "age_months": {"type": "integer"},
                "description": {"type": "string"},
                "created_at": {"type": "string"},
                "last_modified": {"type": "string"}
            }
        },
        "application.PetListDTO": {
            "type": "object",
            "properties": {
                "pets": {"type": "array", "items": {"$ref": "#/definitions/application.PetDTO"}},
                "count": {"type": "integer"}
            }
        },
        "application.DeleteResultDTO": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "application.PetStatsDTO": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "by_status": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "response.Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Service API",
	Description:      "CRUD API for pet documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
