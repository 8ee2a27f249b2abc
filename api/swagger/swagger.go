package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "HKN Tutoring API",
        "description": "Tutor availability collection and slot scheduling service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Availability", "description": "Tutor availability signup"},
        {"name": "Slots", "description": "Scheduled tutoring slots"},
        {"name": "Logistics", "description": "Per-semester tutoring logistics"},
        {"name": "Rooms", "description": "Tutoring room catalog"},
        {"name": "Autocomplete", "description": "Typeahead lookups"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/tutoring/signup": {
            "get": {
                "tags": ["Availability"],
                "summary": "Current availability form state for the signed-in tutor",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Availability"],
                "summary": "Submit the full weekly availability grid",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitAvailabilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "Saved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid submission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutoring/signup/success": {
            "get": {
                "tags": ["Availability"],
                "summary": "Post-submit confirmation",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutoring/api/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "All tutor availability rows (staff only)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AvailabilityListResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutoring/api/availability/export": {
            "get": {
                "tags": ["Availability"],
                "summary": "Export availability rows as CSV or PDF (staff only)",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "weekday", "in": "query", "type": "integer"},
                    {"name": "preference_level", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/tutoring/api/slots": {
            "get": {
                "tags": ["Slots"],
                "summary": "Scheduled slots with assigned tutor names",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutoring/slots": {
            "post": {
                "tags": ["Slots"],
                "summary": "Create slot (staff only)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertSlotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutoring/slots/{id}": {
            "get": {
                "tags": ["Slots"],
                "summary": "Get slot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Slots"],
                "summary": "Update slot (staff only)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertSlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Slots"],
                "summary": "Delete slot (staff only)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/tutoring/logistics": {
            "get": {
                "tags": ["Logistics"],
                "summary": "List logistics records, newest semester first",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Logistics"],
                "summary": "Create logistics record (staff only)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateLogisticsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutoring/logistics/most-recent": {
            "get": {
                "tags": ["Logistics"],
                "summary": "Logistics record for the latest semester",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutoring/logistics/{id}": {
            "get": {
                "tags": ["Logistics"],
                "summary": "Get logistics record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Logistics"],
                "summary": "Delete logistics record (staff only)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/tutoring/logistics/{id}/tutors": {
            "put": {
                "tags": ["Logistics"],
                "summary": "Replace the one-hour and two-hour tutor pools (staff only)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetTutorPoolsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutoring/rooms": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List rooms",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Rooms"],
                "summary": "Create room (staff only)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertRoomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutoring/rooms/{id}": {
            "get": {
                "tags": ["Rooms"],
                "summary": "Get room",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Rooms"],
                "summary": "Update room (staff only)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertRoomRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Rooms"],
                "summary": "Delete room (staff only)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/tutoring/autocomplete/tutor": {
            "get": {
                "tags": ["Autocomplete"],
                "summary": "Search tutors in the current semester pools",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutoring/autocomplete/course": {
            "get": {
                "tags": ["Autocomplete"],
                "summary": "Search the course catalog",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubmitAvailabilityRequest": {
            "type": "object",
            "properties": {
                "slots": {
                    "type": "object",
                    "description": "All 25 slot_<weekday>_<hour> keys mapped to preference level 0-3",
                    "additionalProperties": {"type": "integer"}
                },
                "cory_preference": {"type": "boolean"},
                "soda_preference": {"type": "boolean"},
                "adjacent_slots": {"type": "integer", "enum": [-1, 0, 1]}
            },
            "required": ["slots"]
        },
        "AvailabilityRecord": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"},
                "user_name": {"type": "string"},
                "weekday": {"type": "integer"},
                "hour": {"type": "integer"},
                "preference_level": {"type": "integer"},
                "cory_preference": {"type": "boolean"},
                "soda_preference": {"type": "boolean"},
                "adjacent_slots_preference": {"type": "integer"}
            }
        },
        "AvailabilityListResponse": {
            "type": "object",
            "properties": {
                "availabilities": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/AvailabilityRecord"}
                }
            }
        },
        "UpsertSlotRequest": {
            "type": "object",
            "properties": {
                "logistics_id": {"type": "string"},
                "room_id": {"type": "string"},
                "weekday": {"type": "integer"},
                "start_time": {"type": "string", "example": "12:00"},
                "num_tutors": {"type": "integer"},
                "tutor_ids": {"type": "array", "items": {"type": "integer"}}
            },
            "required": ["start_time"]
        },
        "CreateLogisticsRequest": {
            "type": "object",
            "properties": {
                "semester_id": {"type": "string"}
            },
            "required": ["semester_id"]
        },
        "SetTutorPoolsRequest": {
            "type": "object",
            "properties": {
                "one_hour_tutor_ids": {"type": "array", "items": {"type": "integer"}},
                "two_hour_tutor_ids": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "UpsertRoomRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "color": {"type": "string"}
            },
            "required": ["name"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"type": "object"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
