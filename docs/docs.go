// Package docs registers the Swagger document served at /swagger.
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
        "/policies": {
            "get": {
                "description": "Returns all policies, most recently created first. No pagination.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Policies"
                ],
                "summary": "List policies",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/controllers.PolicyResponse"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/controllers.PolicyErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "description": "Validates the submission, enforces one policy per PAN and stores the record. premium may be sent as a number or a numeric string. medicalConditions is \"Yes\" or \"No\"; any other value, or none, is stored as false.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Policies"
                ],
                "summary": "Create a policy",
                "parameters": [
                    {
                        "description": "Policy submission",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.CreatePolicyRequestDoc"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Stored policy",
                        "schema": {
                            "$ref": "#/definitions/controllers.PolicyResponse"
                        }
                    },
                    "400": {
                        "description": "Missing or invalid fields",
                        "schema": {
                            "$ref": "#/definitions/controllers.PolicyValidationErrorResponse"
                        }
                    },
                    "401": {
                        "description": "No agent id",
                        "schema": {
                            "$ref": "#/definitions/controllers.PolicyErrorResponse"
                        }
                    },
                    "409": {
                        "description": "PAN already used",
                        "schema": {
                            "$ref": "#/definitions/controllers.PolicyErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/controllers.PolicyErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "controllers.CreatePolicyRequestDoc": {
            "type": "object",
            "properties": {
                "address": {"type": "string", "example": "12 MG Road, Bengaluru"},
                "agentId": {"type": "string", "example": "AGENT-001"},
                "customerName": {"type": "string", "example": "Asha Rao"},
                "dob": {"type": "string", "example": "1990-05-01"},
                "email": {"type": "string", "example": "asha@example.com"},
                "gender": {"type": "string", "example": "Female"},
                "medicalConditions": {"type": "string", "example": "No"},
                "membersCount": {"type": "integer", "example": 1},
                "mobile": {"type": "string", "example": "9876543210"},
                "nomineeName": {"type": "string", "example": "Ravi Rao"},
                "panNumber": {"type": "string", "example": "ABCDE1234F"},
                "planType": {"type": "string", "example": "Individual"},
                "policyStartDate": {"type": "string", "example": "2025-01-01"},
                "premium": {"type": "string", "example": "5000"}
            }
        },
        "controllers.PolicyErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Policy already exists for this PAN number"}
            }
        },
        "controllers.PolicyResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string", "example": "12 MG Road, Bengaluru"},
                "agent_id": {"type": "string", "example": "AGENT-001"},
                "customer_name": {"type": "string", "example": "Asha Rao"},
                "dob": {"type": "string", "example": "1990-05-01T00:00:00Z"},
                "email": {"type": "string", "example": "asha@example.com"},
                "gender": {"type": "string", "example": "Female"},
                "id": {"type": "integer", "example": 1},
                "medical_conditions": {"type": "boolean", "example": false},
                "members_count": {"type": "integer", "example": 1},
                "mobile": {"type": "string", "example": "9876543210"},
                "nominee_name": {"type": "string", "example": "Ravi Rao"},
                "pan_number": {"type": "string", "example": "ABCDE1234F"},
                "plan_type": {"type": "string", "example": "Individual"},
                "policy_start_date": {"type": "string", "example": "2025-01-01T00:00:00Z"},
                "premium": {"type": "string", "example": "5000"}
            }
        },
        "controllers.PolicyValidationErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "error": {"type": "string", "example": "Invalid field values"},
                "fields": {"type": "array", "items": {"type": "string"}, "example": ["panNumber"]}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "healthagentapi",
	Description:      "Health Agent Policy API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
