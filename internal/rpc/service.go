// Package rpc exposes the transcriber as a unary gRPC service whose
// messages are google.protobuf.Struct values.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName      = "rutranscript.v1.Transcription"
	TranscribeMethod = "/" + ServiceName + "/Transcribe"
)

// TranscriptionServer is the server API of the Transcription service.
type TranscriptionServer interface {
	Transcribe(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func transcribeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TranscriptionServer).Transcribe(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TranscribeMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TranscriptionServer).Transcribe(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc describes the Transcription service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TranscriptionServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Transcribe",
			Handler:    transcribeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rutranscript/v1/transcription.proto",
}

// RegisterTranscriptionServer registers srv on s.
func RegisterTranscriptionServer(s grpc.ServiceRegistrar, srv TranscriptionServer) {
	s.RegisterService(&ServiceDesc, srv)
}
