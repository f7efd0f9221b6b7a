// Package docs is regenerated by `swag init -g cmd/web/main.go`.
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
        "/api/v1/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "400": {"description": "validation failed or weak password"},
                    "409": {"description": "email or username taken"}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "401": {"description": "invalid credentials"}
                }
            }
        },
        "/api/v1/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Issue a new access token",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RefreshResponse"}},
                    "401": {"description": "missing, unknown or expired refresh token"}
                }
            }
        },
        "/api/v1/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "End the current session",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "missing or unknown refresh token"}
                }
            }
        },
        "/api/v1/auth/logout-all": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "End every session of the caller",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "not authenticated or unknown user"}
                }
            }
        },
        "/api/v1/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Current user's profile",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                    "404": {"description": "deleted or unknown user"}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness and database check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "503": {"description": "database down"}}
            }
        }
    },
    "definitions": {
        "dto.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"},
                "stay_logged_in_days": {"type": "integer"},
                "notifications_push": {"type": "boolean"},
                "notifications_email": {"type": "boolean"}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {
                "username_or_email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.AuthResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"},
                "user": {"$ref": "#/definitions/dto.UserResponse"}
            }
        },
        "dto.RefreshResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"}
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "last_login_at": {"type": "string"},
                "stay_logged_in_days": {"type": "integer"},
                "notifications_push": {"type": "boolean"},
                "notifications_email": {"type": "boolean"},
                "subscription_tier": {"type": "string"},
                "number_of_ai_prompts": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:4000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "disccount API",
	Description:      "Shopping lists, discounts and accounts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
