// Package docs holds the OpenAPI document served under /swagger/ in builds
// tagged swagger. Regenerate with `swag init -g cmd/cardiod/docs.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "cardiod maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/predict/mlp": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "predict"
                ],
                "summary": "Classify clinical measurements",
                "parameters": [
                    {
                        "description": "Clinical measurements",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/types.ClinicalData"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.MLPResponse"
                        }
                    },
                    "415": {
                        "description": "Unsupported Media Type",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/predict/ecg": {
            "post": {
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "predict"
                ],
                "summary": "Classify an ECG image",
                "parameters": [
                    {
                        "type": "file",
                        "description": "ECG image (PNG, JPEG, GIF, BMP, TIFF or WebP)",
                        "name": "ecg_image",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.ECGResponse"
                        }
                    },
                    "413": {
                        "description": "Request Entity Too Large",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/predict/combined": {
            "post": {
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "predict"
                ],
                "summary": "Hybrid verdict from clinical data and an ECG image",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ClinicalData as a JSON string",
                        "name": "clinical_data",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "file",
                        "description": "ECG image",
                        "name": "ecg_image",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.CombinedResponse"
                        }
                    },
                    "413": {
                        "description": "Request Entity Too Large",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/predictions": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "history"
                ],
                "summary": "Recent predictions",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Maximum entries (default 50)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.HistoryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/status": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ops"
                ],
                "summary": "Service status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.StatusResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "types.ArtifactStatus": {
            "type": "object",
            "properties": {
                "error": {
                    "description": "Last load error, if any.",
                    "type": "string"
                },
                "loaded": {
                    "type": "boolean",
                    "example": true
                },
                "name": {
                    "type": "string",
                    "example": "mlp"
                },
                "path": {
                    "type": "string",
                    "example": "/srv/cardiod/artifacts/global_model.json"
                },
                "sha256": {
                    "description": "Hex SHA-256 of the file contents.",
                    "type": "string"
                },
                "size_bytes": {
                    "type": "integer",
                    "example": 74211
                }
            }
        },
        "types.ClinicalData": {
            "type": "object",
            "required": [
                "active",
                "age",
                "alco",
                "ap_hi",
                "ap_lo",
                "cholesterol",
                "gender",
                "gluc",
                "height",
                "smoke",
                "weight"
            ],
            "properties": {
                "active": {
                    "type": "number",
                    "maximum": 1,
                    "minimum": 0,
                    "example": 1
                },
                "age": {
                    "description": "Age in years.",
                    "type": "number",
                    "maximum": 120,
                    "minimum": 1,
                    "example": 52
                },
                "alco": {
                    "type": "number",
                    "maximum": 1,
                    "minimum": 0,
                    "example": 0
                },
                "ap_hi": {
                    "description": "Systolic blood pressure.",
                    "type": "number",
                    "maximum": 250,
                    "minimum": 50,
                    "example": 130
                },
                "ap_lo": {
                    "description": "Diastolic blood pressure.",
                    "type": "number",
                    "maximum": 180,
                    "minimum": 30,
                    "example": 85
                },
                "cholesterol": {
                    "description": "1 normal, 2 above normal, 3 well above normal.",
                    "type": "number",
                    "maximum": 3,
                    "minimum": 1,
                    "example": 1
                },
                "gender": {
                    "description": "1 or 2.",
                    "type": "number",
                    "maximum": 2,
                    "minimum": 1,
                    "example": 1
                },
                "gluc": {
                    "description": "1 normal, 2 above normal, 3 well above normal.",
                    "type": "number",
                    "maximum": 3,
                    "minimum": 1,
                    "example": 1
                },
                "height": {
                    "description": "Height in centimetres.",
                    "type": "number",
                    "maximum": 250,
                    "minimum": 100,
                    "example": 168
                },
                "smoke": {
                    "type": "number",
                    "maximum": 1,
                    "minimum": 0,
                    "example": 0
                },
                "weight": {
                    "description": "Weight in kilograms.",
                    "type": "number",
                    "maximum": 300,
                    "minimum": 30,
                    "example": 74.5
                }
            }
        },
        "types.CombinedDetails": {
            "type": "object",
            "properties": {
                "cnn_confidence": {
                    "type": "string",
                    "example": "80.17%"
                },
                "cnn_contribution": {
                    "type": "string",
                    "example": "Normal",
                    "description": "Abnormal or Normal."
                },
                "mlp_confidence": {
                    "type": "string",
                    "example": "71.42%"
                },
                "mlp_contribution": {
                    "type": "string",
                    "example": "Normal",
                    "description": "High Risk or Normal."
                }
            }
        },
        "types.CombinedResponse": {
            "type": "object",
            "properties": {
                "details": {
                    "$ref": "#/definitions/types.CombinedDetails"
                },
                "final_diagnosis": {
                    "type": "string",
                    "example": "Normal",
                    "description": "High Risk or Normal, taken from the more confident model."
                },
                "model": {
                    "type": "string",
                    "example": "Hybrid Analysis"
                },
                "overall_confidence": {
                    "type": "string",
                    "example": "80.17%"
                },
                "primary_driver": {
                    "type": "string",
                    "example": "ECG Image Analysis",
                    "description": "ECG Image Analysis or Clinical Data (MLP)."
                }
            }
        },
        "types.ECGResponse": {
            "type": "object",
            "properties": {
                "confidence": {
                    "type": "string",
                    "example": "88.10%"
                },
                "model": {
                    "type": "string",
                    "example": "EfficientNet-B3 (CNN)"
                },
                "prediction": {
                    "type": "string",
                    "example": "Normal ECG",
                    "description": "Abnormal ECG Detected or Normal ECG."
                },
                "raw_probability": {
                    "type": "string",
                    "example": "0.1190"
                }
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "description": "HTTP status code.",
                    "type": "integer",
                    "example": 400
                },
                "error": {
                    "type": "string",
                    "example": "invalid JSON body",
                    "description": "Error message."
                },
                "fields": {
                    "description": "Per-field violations for validation errors.",
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.FieldError"
                    }
                }
            }
        },
        "types.FieldError": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string",
                    "example": "ap_hi"
                },
                "rule": {
                    "type": "string",
                    "example": "lte=250"
                }
            }
        },
        "types.HistoryEntry": {
            "type": "object",
            "properties": {
                "confidence": {
                    "type": "number",
                    "example": 71.42
                },
                "created_unix": {
                    "type": "integer",
                    "example": 1700000000
                },
                "driver": {
                    "description": "Primary driver for combined predictions.",
                    "type": "string"
                },
                "endpoint": {
                    "type": "string",
                    "example": "mlp",
                    "description": "mlp, ecg or combined."
                },
                "id": {
                    "type": "string",
                    "example": "3f1e7c1a-8f7e-4d7b-9a55-0d7fb1f1b6a2"
                },
                "probability": {
                    "description": "Positive-class probability; for combined, that of the primary driver.",
                    "type": "number",
                    "example": 0.2858
                },
                "verdict": {
                    "type": "string",
                    "example": "Heart Disease Not Present"
                }
            }
        },
        "types.HistoryResponse": {
            "type": "object",
            "properties": {
                "predictions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.HistoryEntry"
                    }
                }
            }
        },
        "types.MLPResponse": {
            "type": "object",
            "properties": {
                "confidence": {
                    "type": "string",
                    "example": "71.42%",
                    "description": "Confidence in the reported class, percent with two decimals."
                },
                "model": {
                    "type": "string",
                    "example": "MLP (Clinical Data)"
                },
                "prediction": {
                    "type": "string",
                    "example": "Heart Disease Not Present",
                    "description": "Heart Disease Present or Heart Disease Not Present."
                },
                "raw_probability": {
                    "type": "string",
                    "example": "0.2858",
                    "description": "Probability of the positive class, four decimals."
                }
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "artifacts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.ArtifactStatus"
                    }
                },
                "ecg_cache_entries": {
                    "type": "integer",
                    "example": 7
                },
                "ecg_runtime": {
                    "description": "Whether this binary carries an image-model runtime.",
                    "type": "boolean",
                    "example": true
                },
                "history_enabled": {
                    "description": "Whether prediction history is recorded.",
                    "type": "boolean",
                    "example": false
                },
                "predictions_total": {
                    "type": "integer",
                    "example": 42
                },
                "reloads_total": {
                    "type": "integer",
                    "example": 2
                },
                "server_time_unix": {
                    "type": "integer",
                    "example": 1700000000
                },
                "state": {
                    "type": "string",
                    "example": "ready",
                    "description": "ready when the clinical model is loaded, degraded when only the ECG model is missing."
                },
                "uptime_seconds": {
                    "type": "integer",
                    "example": 3600
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
	Schemes:          []string{"http"},
	Title:            "cardiod API",
	Description:      "Heart disease risk prediction from clinical data and ECG images.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
