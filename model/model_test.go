// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kralicky/asn1gen/model"
)

func TestNewInteger(t *testing.T) {
	r, err := model.NewInteger(0, 255)
	require.NoError(t, err)
	assert.Equal(t, model.Integer{Min: 0, Max: 255}, r)

	_, err = model.NewInteger(10, 5)
	assert.Error(t, err)
}

func TestValidateDuplicateFieldNames(t *testing.T) {
	mod := &model.Module{
		Name: "M",
		Definitions: []model.Definition{
			&model.Sequence{
				Name: "S",
				Fields: []model.Field{
					{Name: "my-field", Role: model.Boolean{}},
					{Name: "my_field", Role: model.Boolean{}},
				},
			},
		},
	}
	err := mod.Validate(func(s string) string {
		out := []rune(s)
		for i, r := range out {
			if r == '-' {
				out[i] = '_'
			}
		}
		return string(out)
	})
	assert.Error(t, err)
}

func TestValidateEmptyEnumerated(t *testing.T) {
	mod := &model.Module{
		Name:        "M",
		Definitions: []model.Definition{&model.Enumerated{Name: "E"}},
	}
	err := mod.Validate(func(s string) string { return s })
	assert.Error(t, err)
}

func TestValidateOK(t *testing.T) {
	mod := &model.Module{
		Name: "M",
		Definitions: []model.Definition{
			&model.Sequence{Fields: []model.Field{{Name: "a"}, {Name: "b"}}},
			&model.Enumerated{Variants: []string{"on", "off"}},
		},
	}
	err := mod.Validate(func(s string) string { return s })
	assert.NoError(t, err)
}

func TestDefinitionNames(t *testing.T) {
	var defs []model.Definition = []model.Definition{
		&model.Sequence{Name: "S"},
		&model.SequenceOf{Name: "L"},
		&model.Enumerated{Name: "E"},
	}
	got := make([]string, len(defs))
	for i, d := range defs {
		got[i] = d.DefinitionName()
	}
	assert.Equal(t, []string{"S", "L", "E"}, got)
}
