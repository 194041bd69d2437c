// Package docs регистрирует описание HTTP API для Swagger UI на /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Nutriêde",
            "email": "nutriede@nutriede.com.br"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/enviar-contato": {
            "post": {
                "description": "Принимает одну из трёх форм сайта (orcamento, fornecedor, trabalhe_conosco) и пересылает её по e-mail.\nРезультат показывается уведомлением на главной странице.",
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data"
                ],
                "tags": [
                    "Contact"
                ],
                "summary": "Отправка контактной формы",
                "parameters": [
                    {
                        "enum": [
                            "orcamento",
                            "fornecedor",
                            "trabalhe_conosco"
                        ],
                        "type": "string",
                        "description": "Тип формы",
                        "name": "form_type",
                        "in": "formData",
                        "required": true
                    },
                    {"type": "string", "description": "Имя (orcamento)", "name": "nome", "in": "formData"},
                    {"type": "string", "description": "Компания (orcamento)", "name": "empresa", "in": "formData"},
                    {"type": "string", "description": "CNPJ (orcamento)", "name": "cnpj", "in": "formData"},
                    {"type": "string", "description": "Количество блюд в день (orcamento)", "name": "qtd_refeicoes", "in": "formData"},
                    {"type": "string", "description": "E-mail (orcamento)", "name": "email", "in": "formData"},
                    {"type": "string", "description": "Сообщение (orcamento)", "name": "mensagem", "in": "formData"},
                    {"type": "string", "description": "Компания (fornecedor)", "name": "fornecedor_empresa", "in": "formData"},
                    {"type": "string", "description": "Контактное лицо (fornecedor)", "name": "fornecedor_contato", "in": "formData"},
                    {"type": "string", "description": "E-mail (fornecedor)", "name": "fornecedor_email", "in": "formData"},
                    {"type": "string", "description": "Продукт или услуга (fornecedor)", "name": "fornecedor_produto", "in": "formData"},
                    {"type": "string", "description": "Полное имя (trabalhe_conosco)", "name": "candidato_nome", "in": "formData"},
                    {"type": "string", "description": "E-mail (trabalhe_conosco)", "name": "candidato_email", "in": "formData"},
                    {"type": "string", "description": "Телефон (trabalhe_conosco)", "name": "candidato_telefone", "in": "formData"},
                    {"type": "file", "description": "Резюме (trabalhe_conosco)", "name": "curriculo", "in": "formData"}
                ],
                "responses": {
                    "302": {
                        "description": "Редирект на /#contato с уведомлением"
                    },
                    "303": {
                        "description": "Слишком много запросов: редирект на /#contato с уведомлением"
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Пингует PostgreSQL и Redis.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Проверка состояния",
                "responses": {
                    "200": {
                        "description": "Все зависимости доступны",
                        "schema": {
                            "$ref": "#/definitions/response.Response"
                        }
                    },
                    "503": {
                        "description": "Хотя бы одна зависимость недоступна",
                        "schema": {
                            "$ref": "#/definitions/response.Response"
                        }
                    }
                }
            }
        },
        "/sistema/dashboard": {
            "get": {
                "description": "Доступен только вошедшим пользователям, прошедшим политику доступа.\nИначе редирект на /sistema/login?next=/sistema/dashboard.",
                "produces": [
                    "text/html"
                ],
                "tags": [
                    "Auth"
                ],
                "summary": "Дашборд",
                "responses": {
                    "200": {
                        "description": "Страница дашборда"
                    },
                    "302": {
                        "description": "Нужен вход"
                    }
                }
            }
        },
        "/sistema/login": {
            "get": {
                "description": "GET отдаёт форму входа. POST проверяет учётные данные, ставит cookie сессии\nи перенаправляет на next (только локальный путь) или в дашборд.",
                "produces": [
                    "text/html"
                ],
                "tags": [
                    "Auth"
                ],
                "summary": "Вход во внутренний раздел",
                "parameters": [
                    {"type": "string", "description": "Локальный путь для возврата после входа", "name": "next", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "Форма входа"
                    },
                    "302": {
                        "description": "Пользователь уже вошёл"
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "text/html"
                ],
                "tags": [
                    "Auth"
                ],
                "summary": "Вход во внутренний раздел",
                "parameters": [
                    {"type": "string", "description": "Локальный путь для возврата после входа", "name": "next", "in": "query"},
                    {"type": "string", "description": "E-mail пользователя", "name": "email", "in": "formData"},
                    {"type": "string", "description": "Пароль", "name": "password", "in": "formData"}
                ],
                "responses": {
                    "200": {
                        "description": "Форма входа с уведомлением об ошибке"
                    },
                    "302": {
                        "description": "Вход выполнен"
                    },
                    "500": {
                        "description": "Внутренняя ошибка"
                    }
                }
            }
        },
        "/sistema/logout": {
            "get": {
                "description": "Отзывает сессию, удаляет cookie и перенаправляет на главную страницу.",
                "tags": [
                    "Auth"
                ],
                "summary": "Выход из внутреннего раздела",
                "responses": {
                    "302": {
                        "description": "Редирект на главную"
                    }
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
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
	Title:            "Nutriêde Website",
	Description:      "Формы обратной связи и вход во внутренний раздел сайта Nutriêde.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
