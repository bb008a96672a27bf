// Package docs holds the OpenAPI description served at /swagger/*.
// Regenerate with: swag init -g cmd/issues/main.go -o docs
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
        "/create": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["issues"],
                "summary": "Create an issue assigned to the caller",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Key that makes retried submissions insert once",
                        "name": "Idempotency-Key",
                        "in": "header"
                    },
                    {
                        "description": "Issue title",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.createIssueRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/delete": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["issues"],
                "summary": "Delete the caller's account and issues",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/keep-alive": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["maintenance"],
                "summary": "Issue one read against the database",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/list": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns every unassigned demo issue plus the caller's own issues.",
                "produces": ["application/json"],
                "tags": ["issues"],
                "summary": "List visible issues",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Issue"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Issue": {
            "type": "object",
            "properties": {
                "assignee_email": {"type": "string"},
                "assignee_name": {"type": "string"},
                "id": {"type": "integer"},
                "status": {"type": "string", "enum": ["to-do", "in-progress", "done"]},
                "title": {"type": "string"}
            }
        },
        "handler.createIssueRequest": {
            "type": "object",
            "properties": {"title": {"type": "string"}}
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/.netlify/functions",
	Schemes:          []string{},
	Title:            "Issues API",
	Description:      "Function handlers for the issue list: create, list, delete account and keep-alive.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
