// Copyright 2019 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package encoding contains subpackages that render a parsed schema
// model to byte-level and textual representations.
//
// protoyaml walks an *ast.ProtoFile and emits a YAML document
// describing its packages, messages, enums and services, for tooling
// that consumes the model without linking against the Go-typed tree
// itself.
package encoding
