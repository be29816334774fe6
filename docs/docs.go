// Package docs provides the generated swagger spec registration.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login as staff",
                "parameters": [
                    {
                        "description": "Login data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a staff account",
                "parameters": [
                    {
                        "description": "Registration data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/participants": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "List participants",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Participant"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Provision a participant",
                "description": "Create a participant with a server-minted token and all meal slots unredeemed",
                "parameters": [
                    {
                        "description": "Participant data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.ProvisionRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Participant"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/participants/import": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["text/csv"],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Bulk import participants",
                "description": "Import participants from a CSV body with columns name[,team]",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ImportResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/participants/{token}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Get a participant by token",
                "parameters": [
                    {"type": "string", "description": "Participant token", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Participant"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/redemptions/attempt": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["redemptions"],
                "summary": "Attempt a meal redemption",
                "description": "Redeem the active meal for a scanned participant token, at most once per slot",
                "parameters": [
                    {
                        "description": "Scan data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.AttemptRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.AttemptResult"}},
                    "404": {"description": "unknown participant", "schema": {"$ref": "#/definitions/services.AttemptResult"}},
                    "409": {"description": "already redeemed", "schema": {"$ref": "#/definitions/services.AttemptResult"}},
                    "422": {"description": "no active meal window", "schema": {"$ref": "#/definitions/services.AttemptResult"}},
                    "503": {"description": "store unavailable, outcome indeterminate", "schema": {"$ref": "#/definitions/services.AttemptResult"}}
                }
            }
        },
        "/api/v1/redemptions/status/{token}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["redemptions"],
                "summary": "Check redemption status",
                "description": "Read the redeemed flag per meal slot without mutating anything",
                "parameters": [
                    {"type": "string", "description": "Participant token", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.StatusResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/scores": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["scores"],
                "summary": "List all scores",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Score"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["scores"],
                "summary": "Submit a rubric score",
                "description": "Upsert the calling judge's rubric for a team",
                "parameters": [
                    {
                        "description": "Rubric values",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.SubmitScoreRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Score"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/scores/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "tags": ["scores"],
                "summary": "Export scores as CSV",
                "responses": {
                    "200": {"description": "CSV payload", "schema": {"type": "string"}}
                }
            }
        },
        "/api/v1/scores/leaderboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["scores"],
                "summary": "Ranked team standings",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/services.TeamStanding"}}}
                }
            }
        },
        "/api/v1/teams": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "List teams",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Team"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Create a team",
                "parameters": [
                    {
                        "description": "Team data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.CreateTeamRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Team"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/ws/feed": {
            "get": {
                "tags": ["websocket"],
                "summary": "WebSocket feed of served meals",
                "description": "Connect via WebSocket to watch redemptions as they happen",
                "responses": {}
            }
        }
    },
    "definitions": {
        "handlers.AttemptRequest": {
            "type": "object",
            "required": ["token"],
            "properties": {
                "token": {"type": "string", "example": "550e8400-e29b-41d4-a716-446655440000"},
                "scanned_at": {"type": "string", "example": "2026-09-05T07:15:00Z"}
            }
        },
        "handlers.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string", "example": "eyJhbGciOiJIUzI1NiIs..."}
            }
        },
        "handlers.CreateTeamRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "example": "Null Pointers"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "something went wrong"}
            }
        },
        "handlers.ImportResponse": {
            "type": "object",
            "properties": {
                "imported": {"type": "integer", "example": 42}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string", "example": "canteen1"},
                "password": {"type": "string", "example": "password123"}
            }
        },
        "handlers.ProvisionRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "example": "Ada Lovelace"},
                "team_id": {"type": "integer", "example": 3}
            }
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["username", "password", "role"],
            "properties": {
                "username": {"type": "string", "example": "canteen1"},
                "password": {"type": "string", "example": "password123"},
                "role": {"type": "string", "enum": ["coordinator", "judge", "foodservice"], "example": "foodservice"}
            }
        },
        "handlers.StatusResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "slots": {"type": "object", "additionalProperties": {"type": "boolean"}}
            }
        },
        "handlers.SubmitScoreRequest": {
            "type": "object",
            "required": ["team_id"],
            "properties": {
                "team_id": {"type": "integer", "example": 3},
                "innovation": {"type": "integer", "example": 8},
                "execution": {"type": "integer", "example": 7},
                "design": {"type": "integer", "example": 9},
                "presentation": {"type": "integer", "example": 6}
            }
        },
        "models.Participant": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "token": {"type": "string"},
                "name": {"type": "string"},
                "team_id": {"type": "integer"},
                "team": {"$ref": "#/definitions/models.Team"},
                "created_at": {"type": "string"}
            }
        },
        "models.Score": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "team_id": {"type": "integer"},
                "judge_id": {"type": "integer"},
                "innovation": {"type": "integer"},
                "execution": {"type": "integer"},
                "design": {"type": "integer"},
                "presentation": {"type": "integer"},
                "updated_at": {"type": "string"}
            }
        },
        "models.Team": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "services.AttemptResult": {
            "type": "object",
            "properties": {
                "served": {"type": "boolean"},
                "slot": {"type": "string", "enum": ["breakfast", "lunch", "dinner"]},
                "reason": {"type": "string", "enum": ["no_active_meal", "duplicate_redemption", "unknown_participant", "store_indeterminate"]}
            }
        },
        "services.TeamStanding": {
            "type": "object",
            "properties": {
                "team_id": {"type": "integer"},
                "team_name": {"type": "string"},
                "judges": {"type": "integer"},
                "total": {"type": "integer"},
                "average": {"type": "number"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Enter \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "HAL 4.0 Manager API",
	Description:      "API for hackathon meal redemption kiosks and judge scoring",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
