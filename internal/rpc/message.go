package rpc

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rbright/rutranscript/internal/pipeline"
)

// Request is the client view of a Transcribe call.
type Request struct {
	Text         string
	StressedText string
	StressPlace  string
	StressSymbol string
	SaveStresses bool
	SaveSpaces   bool
	SavePauses   bool
	Replacements map[string]string
}

func (r Request) toStruct() (*structpb.Struct, error) {
	replacements := make(map[string]any, len(r.Replacements))
	for from, to := range r.Replacements {
		replacements[from] = to
	}
	return structpb.NewStruct(map[string]any{
		"text":          r.Text,
		"stressed_text": r.StressedText,
		"stress_place":  r.StressPlace,
		"stress_symbol": r.StressSymbol,
		"save_stresses": r.SaveStresses,
		"save_spaces":   r.SaveSpaces,
		"save_pauses":   r.SavePauses,
		"replacements":  replacements,
	})
}

func requestFromStruct(s *structpb.Struct) (Request, error) {
	var req Request
	for key, value := range s.GetFields() {
		var err error
		switch key {
		case "text":
			req.Text, err = stringField(key, value)
		case "stressed_text":
			req.StressedText, err = stringField(key, value)
		case "stress_place":
			req.StressPlace, err = stringField(key, value)
		case "stress_symbol":
			req.StressSymbol, err = stringField(key, value)
		case "save_stresses":
			req.SaveStresses, err = boolField(key, value)
		case "save_spaces":
			req.SaveSpaces, err = boolField(key, value)
		case "save_pauses":
			req.SavePauses, err = boolField(key, value)
		case "replacements":
			req.Replacements, err = stringMapField(key, value)
		default:
			err = fmt.Errorf("unknown field %q", key)
		}
		if err != nil {
			return Request{}, err
		}
	}
	return req, nil
}

func stringField(key string, v *structpb.Value) (string, error) {
	if _, ok := v.GetKind().(*structpb.Value_StringValue); !ok {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	return v.GetStringValue(), nil
}

func stringMapField(key string, v *structpb.Value) (map[string]string, error) {
	if _, ok := v.GetKind().(*structpb.Value_StructValue); !ok {
		return nil, fmt.Errorf("field %q must be an object", key)
	}
	fields := v.GetStructValue().GetFields()
	if len(fields) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(fields))
	for from, to := range fields {
		value, err := stringField(key+"."+from, to)
		if err != nil {
			return nil, err
		}
		out[from] = value
	}
	return out, nil
}

func boolField(key string, v *structpb.Value) (bool, error) {
	if _, ok := v.GetKind().(*structpb.Value_BoolValue); !ok {
		return false, fmt.Errorf("field %q must be a bool", key)
	}
	return v.GetBoolValue(), nil
}

func answerToStruct(a pipeline.Answer) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"allophones":    stringList(a.Allophones),
		"phonemes":      stringList(a.Phonemes),
		"stressed_text": structpb.NewStringValue(a.StressedText),
		"errors":        stringList(a.Errors),
	}}
}

func answerFromStruct(s *structpb.Struct) pipeline.Answer {
	fields := s.GetFields()
	return pipeline.Answer{
		Allophones:   fromList(fields["allophones"]),
		Phonemes:     fromList(fields["phonemes"]),
		StressedText: fields["stressed_text"].GetStringValue(),
		Errors:       fromList(fields["errors"]),
	}
}

func stringList(items []string) *structpb.Value {
	values := make([]*structpb.Value, len(items))
	for i, item := range items {
		values[i] = structpb.NewStringValue(item)
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

func fromList(v *structpb.Value) []string {
	values := v.GetListValue().GetValues()
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, item := range values {
		out[i] = item.GetStringValue()
	}
	return out
}
