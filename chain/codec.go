package chain

import (
	"unicode/utf8"

	"github.com/thanhminhmr/go-errchain/errors"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	errMarshal            = errors.String("chain: failed to marshal record")
	errUnmarshal          = errors.String("chain: failed to unmarshal record")
	errMissingVersion     = errors.String("chain: record has no version")
	errUnsupportedVersion = errors.Template("chain: unsupported record version %v")
	errEmptyChain         = errors.String("chain: record has no frames")
	errMalformedFrame     = errors.Template("chain: malformed frame at index %d")
)

const (
	fieldVersion     = "version"
	fieldServiceName = "service_name"
	fieldChain       = "chain"
	fieldMessage     = "message"
	fieldType        = "type"
	fieldDetails     = "details"
	fieldStackTrace  = "stack_trace"
	fieldFunction    = "function"
	fieldFile        = "file"
	fieldLine        = "line"
)

// Marshal encodes the record as a protobuf google.protobuf.Struct. It fails
// when a string in the record is not valid UTF-8.
func (r Record) Marshal() ([]byte, error) {
	version := r.Version
	if version == 0 {
		version = Version
	}
	frames := make([]*structpb.Value, 0, len(r.Chain))
	for _, frame := range r.Chain {
		frames = append(frames, structpb.NewStructValue(frame.toStruct()))
	}
	fields := map[string]*structpb.Value{
		fieldVersion: structpb.NewNumberValue(float64(version)),
		fieldChain:   structpb.NewListValue(&structpb.ListValue{Values: frames}),
	}
	if r.ServiceName != "" {
		fields[fieldServiceName] = structpb.NewStringValue(r.ServiceName)
	}
	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(&structpb.Struct{Fields: fields})
	if err != nil {
		return nil, errMarshal.AddCause(err)
	}
	return data, nil
}

func (f Frame) toStruct() *structpb.Struct {
	fields := map[string]*structpb.Value{
		fieldMessage: structpb.NewStringValue(f.Message),
	}
	if f.Type != "" {
		fields[fieldType] = structpb.NewStringValue(f.Type)
	}
	if len(f.Details) > 0 {
		details := make(map[string]*structpb.Value, len(f.Details))
		for key, value := range f.Details {
			// entries a Struct cannot hold are dropped one by one
			if !utf8.ValidString(key) {
				continue
			}
			if converted, err := structpb.NewValue(value); err == nil {
				details[key] = converted
			}
		}
		fields[fieldDetails] = structpb.NewStructValue(&structpb.Struct{Fields: details})
	}
	if len(f.StackTrace) > 0 {
		frames := make([]*structpb.Value, 0, len(f.StackTrace))
		for _, frame := range f.StackTrace {
			frames = append(frames, structpb.NewStructValue(&structpb.Struct{
				Fields: map[string]*structpb.Value{
					fieldFunction: structpb.NewStringValue(frame.Function),
					fieldFile:     structpb.NewStringValue(frame.File),
					fieldLine:     structpb.NewNumberValue(float64(frame.Line)),
				},
			}))
		}
		fields[fieldStackTrace] = structpb.NewListValue(&structpb.ListValue{Values: frames})
	}
	return &structpb.Struct{Fields: fields}
}

// Unmarshal decodes bytes produced by Record.Marshal. Unknown fields are
// ignored; a record without frames, with an unknown version or with a frame
// lacking its message is rejected.
func Unmarshal(data []byte) (Record, error) {
	var message structpb.Struct
	if err := proto.Unmarshal(data, &message); err != nil {
		return Record{}, errUnmarshal.AddCause(err)
	}
	fields := message.GetFields()
	version, ok := fields[fieldVersion].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return Record{}, errMissingVersion
	}
	if version.NumberValue != Version {
		return Record{}, errUnsupportedVersion.Format(version.NumberValue)
	}
	values := fields[fieldChain].GetListValue().GetValues()
	if len(values) == 0 {
		return Record{}, errEmptyChain
	}
	record := Record{
		Version:     Version,
		Chain:       make([]Frame, 0, len(values)),
		ServiceName: fields[fieldServiceName].GetStringValue(),
	}
	for index, value := range values {
		frame, ok := frameFromStruct(value.GetStructValue())
		if !ok {
			return Record{}, errMalformedFrame.Format(index)
		}
		record.Chain = append(record.Chain, frame)
	}
	return record, nil
}

func frameFromStruct(value *structpb.Struct) (Frame, bool) {
	fields := value.GetFields()
	message, ok := fields[fieldMessage].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return Frame{}, false
	}
	frame := Frame{
		Message: message.StringValue,
		Type:    fields[fieldType].GetStringValue(),
	}
	if details := fields[fieldDetails].GetStructValue(); details != nil {
		frame.Details = details.AsMap()
	}
	for _, entry := range fields[fieldStackTrace].GetListValue().GetValues() {
		entryFields := entry.GetStructValue().GetFields()
		frame.StackTrace = append(frame.StackTrace, errors.StackFrame{
			Function: entryFields[fieldFunction].GetStringValue(),
			File:     entryFields[fieldFile].GetStringValue(),
			Line:     int(entryFields[fieldLine].GetNumberValue()),
		})
	}
	return frame, true
}
