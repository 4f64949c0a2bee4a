package fixtures

// JSON Schemas the datasets are validated against at load time. A fixture
// that does not match its schema aborts suite setup instead of producing a
// confusing mid-scenario failure.

const usersSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["email", "password", "verified"],
    "properties": {
      "email": {"type": "string", "format": "email"},
      "password": {"type": "string", "minLength": 1},
      "verified": {"type": "boolean"}
    },
    "additionalProperties": false
  }
}`

const coursesSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["code", "password", "title", "state"],
    "properties": {
      "code": {"type": "string", "pattern": "^[A-Z0-9-]+$"},
      "password": {"type": "string", "minLength": 1},
      "title": {"type": "string", "minLength": 1},
      "state": {"enum": ["open", "full", "closed", "archived"]}
    },
    "additionalProperties": false
  }
}`

const securityPayloadsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "minProperties": 1,
  "additionalProperties": {
    "type": "array",
    "minItems": 1,
    "items": {"type": "string", "minLength": 1}
  }
}`

var schemasByDataset = map[string]string{
	DatasetUsers:            usersSchema,
	DatasetCourses:          coursesSchema,
	DatasetSecurityPayloads: securityPayloadsSchema,
}
