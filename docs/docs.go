// Package docs 提供 /swagger 使用的 API 文档模板，接口变更时需同步更新。
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["系统"],
                "summary": "服务信息",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}
            }
        },
        "/health": {
            "get": {
                "description": "检查服务状态",
                "produces": ["application/json"],
                "tags": ["系统"],
                "summary": "健康检查",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}
            }
        },
        "/api/test/process": {
            "post": {
                "description": "提交当前题目的答案（可选）并获取下一题，题目答完后返回总分",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["情绪测试"],
                "summary": "答题流程",
                "parameters": [
                    {"description": "答题请求", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controller.TestRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/util.Response"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/service.ProcessResult"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/util.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/test/progress/{userId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["情绪测试"],
                "summary": "获取用户进度",
                "parameters": [{"type": "string", "description": "用户ID (UUID)", "name": "userId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/util.Response"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/controller.ProgressResponse"}}}]}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["情绪测试"],
                "summary": "删除用户进度",
                "parameters": [{"type": "string", "description": "用户ID (UUID)", "name": "userId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/test/reset/{userId}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["情绪测试"],
                "summary": "重置用户进度",
                "parameters": [{"type": "string", "description": "用户ID (UUID)", "name": "userId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/test/questions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["情绪测试"],
                "summary": "获取全部启用题目",
                "responses": {"200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/util.Response"}, {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/model.QuestionView"}}}}]}}}
            }
        },
        "/api/test/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["情绪测试"],
                "summary": "测试统计",
                "responses": {"200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/util.Response"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/model.TestStats"}}}]}}}
            }
        }
    },
    "definitions": {
        "controller.TestRequest": {
            "type": "object",
            "required": ["user_id"],
            "properties": {
                "user_id": {"type": "string"},
                "answer": {"type": "object"},
                "question_id": {"type": "integer"}
            }
        },
        "controller.ProgressResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "current_step": {"type": "integer"},
                "total_score": {"type": "number"},
                "is_completed": {"type": "boolean"},
                "answers": {"type": "array", "items": {"$ref": "#/definitions/model.AnswerRecord"}},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "model.AnswerRecord": {
            "type": "object",
            "properties": {
                "question_id": {"type": "integer"},
                "step": {"type": "integer"},
                "value": {"type": "object"},
                "score": {"type": "number"}
            }
        },
        "model.QuestionView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "type": {"type": "string", "enum": ["text", "buttons", "scale", "dropdown", "multi-select", "radio"]},
                "question": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "min": {"type": "integer"},
                "max": {"type": "integer"}
            }
        },
        "model.TestStats": {
            "type": "object",
            "properties": {
                "total_questions": {"type": "integer"},
                "total_users": {"type": "integer"},
                "completed_users": {"type": "integer"},
                "completion_rate": {"type": "string"},
                "average_score": {"type": "number"}
            }
        },
        "service.ProcessResult": {
            "type": "object",
            "properties": {
                "question": {"$ref": "#/definitions/model.QuestionView"},
                "completed": {"type": "boolean"},
                "current_step": {"type": "integer"},
                "total_score": {"type": "number"},
                "message": {"type": "string"}
            }
        },
        "util.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Emotional Load Test API",
	Description:      "情绪负荷测试微服务：逐题下发、记录作答、累计得分。",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
