package trialv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "trial.v1.TrialService"

// Full method names.
const (
	TrialService_CreateCase_FullMethodName             = "/" + ServiceName + "/CreateCase"
	TrialService_GetCase_FullMethodName                = "/" + ServiceName + "/GetCase"
	TrialService_ListCases_FullMethodName              = "/" + ServiceName + "/ListCases"
	TrialService_UpdateCase_FullMethodName             = "/" + ServiceName + "/UpdateCase"
	TrialService_DeleteCase_FullMethodName             = "/" + ServiceName + "/DeleteCase"
	TrialService_UploadDocument_FullMethodName         = "/" + ServiceName + "/UploadDocument"
	TrialService_ListDocuments_FullMethodName          = "/" + ServiceName + "/ListDocuments"
	TrialService_GetDocument_FullMethodName            = "/" + ServiceName + "/GetDocument"
	TrialService_DeleteDocument_FullMethodName         = "/" + ServiceName + "/DeleteDocument"
	TrialService_GenerateInitialVerdict_FullMethodName = "/" + ServiceName + "/GenerateInitialVerdict"
	TrialService_SubmitArgument_FullMethodName         = "/" + ServiceName + "/SubmitArgument"
	TrialService_RetryRoundVerdict_FullMethodName      = "/" + ServiceName + "/RetryRoundVerdict"
	TrialService_GetRoundStatus_FullMethodName         = "/" + ServiceName + "/GetRoundStatus"
	TrialService_ListArguments_FullMethodName          = "/" + ServiceName + "/ListArguments"
	TrialService_ListVerdicts_FullMethodName           = "/" + ServiceName + "/ListVerdicts"
	TrialService_GetVerdict_FullMethodName             = "/" + ServiceName + "/GetVerdict"
	TrialService_FinalizeCase_FullMethodName           = "/" + ServiceName + "/FinalizeCase"
)

// TrialServiceServer is the server API for TrialService.
type TrialServiceServer interface {
	CreateCase(context.Context, *CreateCaseRequest) (*CreateCaseResponse, error)
	GetCase(context.Context, *GetCaseRequest) (*GetCaseResponse, error)
	ListCases(context.Context, *ListCasesRequest) (*ListCasesResponse, error)
	UpdateCase(context.Context, *UpdateCaseRequest) (*UpdateCaseResponse, error)
	DeleteCase(context.Context, *DeleteCaseRequest) (*DeleteCaseResponse, error)
	UploadDocument(context.Context, *UploadDocumentRequest) (*UploadDocumentResponse, error)
	ListDocuments(context.Context, *ListDocumentsRequest) (*ListDocumentsResponse, error)
	GetDocument(context.Context, *GetDocumentRequest) (*GetDocumentResponse, error)
	DeleteDocument(context.Context, *DeleteDocumentRequest) (*DeleteDocumentResponse, error)
	GenerateInitialVerdict(context.Context, *GenerateInitialVerdictRequest) (*GenerateInitialVerdictResponse, error)
	SubmitArgument(context.Context, *SubmitArgumentRequest) (*SubmitArgumentResponse, error)
	RetryRoundVerdict(context.Context, *RetryRoundVerdictRequest) (*RetryRoundVerdictResponse, error)
	GetRoundStatus(context.Context, *GetRoundStatusRequest) (*GetRoundStatusResponse, error)
	ListArguments(context.Context, *ListArgumentsRequest) (*ListArgumentsResponse, error)
	ListVerdicts(context.Context, *ListVerdictsRequest) (*ListVerdictsResponse, error)
	GetVerdict(context.Context, *GetVerdictRequest) (*GetVerdictResponse, error)
	FinalizeCase(context.Context, *FinalizeCaseRequest) (*FinalizeCaseResponse, error)
}

// UnimplementedTrialServiceServer returns Unimplemented for every method.
// Embed it to stay forward compatible.
type UnimplementedTrialServiceServer struct{}

func (UnimplementedTrialServiceServer) CreateCase(context.Context, *CreateCaseRequest) (*CreateCaseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateCase not implemented")
}

func (UnimplementedTrialServiceServer) GetCase(context.Context, *GetCaseRequest) (*GetCaseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCase not implemented")
}

func (UnimplementedTrialServiceServer) ListCases(context.Context, *ListCasesRequest) (*ListCasesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCases not implemented")
}

func (UnimplementedTrialServiceServer) UpdateCase(context.Context, *UpdateCaseRequest) (*UpdateCaseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateCase not implemented")
}

func (UnimplementedTrialServiceServer) DeleteCase(context.Context, *DeleteCaseRequest) (*DeleteCaseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteCase not implemented")
}

func (UnimplementedTrialServiceServer) UploadDocument(context.Context, *UploadDocumentRequest) (*UploadDocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UploadDocument not implemented")
}

func (UnimplementedTrialServiceServer) ListDocuments(context.Context, *ListDocumentsRequest) (*ListDocumentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListDocuments not implemented")
}

func (UnimplementedTrialServiceServer) GetDocument(context.Context, *GetDocumentRequest) (*GetDocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDocument not implemented")
}

func (UnimplementedTrialServiceServer) DeleteDocument(context.Context, *DeleteDocumentRequest) (*DeleteDocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteDocument not implemented")
}

func (UnimplementedTrialServiceServer) GenerateInitialVerdict(context.Context, *GenerateInitialVerdictRequest) (*GenerateInitialVerdictResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GenerateInitialVerdict not implemented")
}

func (UnimplementedTrialServiceServer) SubmitArgument(context.Context, *SubmitArgumentRequest) (*SubmitArgumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitArgument not implemented")
}

func (UnimplementedTrialServiceServer) RetryRoundVerdict(context.Context, *RetryRoundVerdictRequest) (*RetryRoundVerdictResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RetryRoundVerdict not implemented")
}

func (UnimplementedTrialServiceServer) GetRoundStatus(context.Context, *GetRoundStatusRequest) (*GetRoundStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRoundStatus not implemented")
}

func (UnimplementedTrialServiceServer) ListArguments(context.Context, *ListArgumentsRequest) (*ListArgumentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListArguments not implemented")
}

func (UnimplementedTrialServiceServer) ListVerdicts(context.Context, *ListVerdictsRequest) (*ListVerdictsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListVerdicts not implemented")
}

func (UnimplementedTrialServiceServer) GetVerdict(context.Context, *GetVerdictRequest) (*GetVerdictResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetVerdict not implemented")
}

func (UnimplementedTrialServiceServer) FinalizeCase(context.Context, *FinalizeCaseRequest) (*FinalizeCaseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FinalizeCase not implemented")
}

// RegisterTrialServiceServer registers srv on s.
func RegisterTrialServiceServer(s grpc.ServiceRegistrar, srv TrialServiceServer) {
	s.RegisterService(&TrialService_ServiceDesc, srv)
}

func unaryHandler[Req, Resp any](fullMethod string, call func(TrialServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TrialServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TrialServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// TrialService_ServiceDesc describes TrialService for grpc.Server.
var TrialService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TrialServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateCase", Handler: unaryHandler(TrialService_CreateCase_FullMethodName, TrialServiceServer.CreateCase)},
		{MethodName: "GetCase", Handler: unaryHandler(TrialService_GetCase_FullMethodName, TrialServiceServer.GetCase)},
		{MethodName: "ListCases", Handler: unaryHandler(TrialService_ListCases_FullMethodName, TrialServiceServer.ListCases)},
		{MethodName: "UpdateCase", Handler: unaryHandler(TrialService_UpdateCase_FullMethodName, TrialServiceServer.UpdateCase)},
		{MethodName: "DeleteCase", Handler: unaryHandler(TrialService_DeleteCase_FullMethodName, TrialServiceServer.DeleteCase)},
		{MethodName: "UploadDocument", Handler: unaryHandler(TrialService_UploadDocument_FullMethodName, TrialServiceServer.UploadDocument)},
		{MethodName: "ListDocuments", Handler: unaryHandler(TrialService_ListDocuments_FullMethodName, TrialServiceServer.ListDocuments)},
		{MethodName: "GetDocument", Handler: unaryHandler(TrialService_GetDocument_FullMethodName, TrialServiceServer.GetDocument)},
		{MethodName: "DeleteDocument", Handler: unaryHandler(TrialService_DeleteDocument_FullMethodName, TrialServiceServer.DeleteDocument)},
		{MethodName: "GenerateInitialVerdict", Handler: unaryHandler(TrialService_GenerateInitialVerdict_FullMethodName, TrialServiceServer.GenerateInitialVerdict)},
		{MethodName: "SubmitArgument", Handler: unaryHandler(TrialService_SubmitArgument_FullMethodName, TrialServiceServer.SubmitArgument)},
		{MethodName: "RetryRoundVerdict", Handler: unaryHandler(TrialService_RetryRoundVerdict_FullMethodName, TrialServiceServer.RetryRoundVerdict)},
		{MethodName: "GetRoundStatus", Handler: unaryHandler(TrialService_GetRoundStatus_FullMethodName, TrialServiceServer.GetRoundStatus)},
		{MethodName: "ListArguments", Handler: unaryHandler(TrialService_ListArguments_FullMethodName, TrialServiceServer.ListArguments)},
		{MethodName: "ListVerdicts", Handler: unaryHandler(TrialService_ListVerdicts_FullMethodName, TrialServiceServer.ListVerdicts)},
		{MethodName: "GetVerdict", Handler: unaryHandler(TrialService_GetVerdict_FullMethodName, TrialServiceServer.GetVerdict)},
		{MethodName: "FinalizeCase", Handler: unaryHandler(TrialService_FinalizeCase_FullMethodName, TrialServiceServer.FinalizeCase)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "trial/v1/trial.go",
}

// TrialServiceClient is the client API for TrialService.
type TrialServiceClient interface {
	CreateCase(ctx context.Context, in *CreateCaseRequest, opts ...grpc.CallOption) (*CreateCaseResponse, error)
	GetCase(ctx context.Context, in *GetCaseRequest, opts ...grpc.CallOption) (*GetCaseResponse, error)
	ListCases(ctx context.Context, in *ListCasesRequest, opts ...grpc.CallOption) (*ListCasesResponse, error)
	UpdateCase(ctx context.Context, in *UpdateCaseRequest, opts ...grpc.CallOption) (*UpdateCaseResponse, error)
	DeleteCase(ctx context.Context, in *DeleteCaseRequest, opts ...grpc.CallOption) (*DeleteCaseResponse, error)
	UploadDocument(ctx context.Context, in *UploadDocumentRequest, opts ...grpc.CallOption) (*UploadDocumentResponse, error)
	ListDocuments(ctx context.Context, in *ListDocumentsRequest, opts ...grpc.CallOption) (*ListDocumentsResponse, error)
	GetDocument(ctx context.Context, in *GetDocumentRequest, opts ...grpc.CallOption) (*GetDocumentResponse, error)
	DeleteDocument(ctx context.Context, in *DeleteDocumentRequest, opts ...grpc.CallOption) (*DeleteDocumentResponse, error)
	GenerateInitialVerdict(ctx context.Context, in *GenerateInitialVerdictRequest, opts ...grpc.CallOption) (*GenerateInitialVerdictResponse, error)
	SubmitArgument(ctx context.Context, in *SubmitArgumentRequest, opts ...grpc.CallOption) (*SubmitArgumentResponse, error)
	RetryRoundVerdict(ctx context.Context, in *RetryRoundVerdictRequest, opts ...grpc.CallOption) (*RetryRoundVerdictResponse, error)
	GetRoundStatus(ctx context.Context, in *GetRoundStatusRequest, opts ...grpc.CallOption) (*GetRoundStatusResponse, error)
	ListArguments(ctx context.Context, in *ListArgumentsRequest, opts ...grpc.CallOption) (*ListArgumentsResponse, error)
	ListVerdicts(ctx context.Context, in *ListVerdictsRequest, opts ...grpc.CallOption) (*ListVerdictsResponse, error)
	GetVerdict(ctx context.Context, in *GetVerdictRequest, opts ...grpc.CallOption) (*GetVerdictResponse, error)
	FinalizeCase(ctx context.Context, in *FinalizeCaseRequest, opts ...grpc.CallOption) (*FinalizeCaseResponse, error)
}

type trialServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTrialServiceClient returns a client that speaks the JSON codec.
func NewTrialServiceClient(cc grpc.ClientConnInterface) TrialServiceClient {
	return &trialServiceClient{cc: cc}
}

func (c *trialServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, callOpts...)
}

func (c *trialServiceClient) CreateCase(ctx context.Context, in *CreateCaseRequest, opts ...grpc.CallOption) (*CreateCaseResponse, error) {
	out := new(CreateCaseResponse)
	if err := c.invoke(ctx, TrialService_CreateCase_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) GetCase(ctx context.Context, in *GetCaseRequest, opts ...grpc.CallOption) (*GetCaseResponse, error) {
	out := new(GetCaseResponse)
	if err := c.invoke(ctx, TrialService_GetCase_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) ListCases(ctx context.Context, in *ListCasesRequest, opts ...grpc.CallOption) (*ListCasesResponse, error) {
	out := new(ListCasesResponse)
	if err := c.invoke(ctx, TrialService_ListCases_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) UpdateCase(ctx context.Context, in *UpdateCaseRequest, opts ...grpc.CallOption) (*UpdateCaseResponse, error) {
	out := new(UpdateCaseResponse)
	if err := c.invoke(ctx, TrialService_UpdateCase_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) DeleteCase(ctx context.Context, in *DeleteCaseRequest, opts ...grpc.CallOption) (*DeleteCaseResponse, error) {
	out := new(DeleteCaseResponse)
	if err := c.invoke(ctx, TrialService_DeleteCase_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) UploadDocument(ctx context.Context, in *UploadDocumentRequest, opts ...grpc.CallOption) (*UploadDocumentResponse, error) {
	out := new(UploadDocumentResponse)
	if err := c.invoke(ctx, TrialService_UploadDocument_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) ListDocuments(ctx context.Context, in *ListDocumentsRequest, opts ...grpc.CallOption) (*ListDocumentsResponse, error) {
	out := new(ListDocumentsResponse)
	if err := c.invoke(ctx, TrialService_ListDocuments_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) GetDocument(ctx context.Context, in *GetDocumentRequest, opts ...grpc.CallOption) (*GetDocumentResponse, error) {
	out := new(GetDocumentResponse)
	if err := c.invoke(ctx, TrialService_GetDocument_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) DeleteDocument(ctx context.Context, in *DeleteDocumentRequest, opts ...grpc.CallOption) (*DeleteDocumentResponse, error) {
	out := new(DeleteDocumentResponse)
	if err := c.invoke(ctx, TrialService_DeleteDocument_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) GenerateInitialVerdict(ctx context.Context, in *GenerateInitialVerdictRequest, opts ...grpc.CallOption) (*GenerateInitialVerdictResponse, error) {
	out := new(GenerateInitialVerdictResponse)
	if err := c.invoke(ctx, TrialService_GenerateInitialVerdict_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) SubmitArgument(ctx context.Context, in *SubmitArgumentRequest, opts ...grpc.CallOption) (*SubmitArgumentResponse, error) {
	out := new(SubmitArgumentResponse)
	if err := c.invoke(ctx, TrialService_SubmitArgument_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) RetryRoundVerdict(ctx context.Context, in *RetryRoundVerdictRequest, opts ...grpc.CallOption) (*RetryRoundVerdictResponse, error) {
	out := new(RetryRoundVerdictResponse)
	if err := c.invoke(ctx, TrialService_RetryRoundVerdict_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) GetRoundStatus(ctx context.Context, in *GetRoundStatusRequest, opts ...grpc.CallOption) (*GetRoundStatusResponse, error) {
	out := new(GetRoundStatusResponse)
	if err := c.invoke(ctx, TrialService_GetRoundStatus_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) ListArguments(ctx context.Context, in *ListArgumentsRequest, opts ...grpc.CallOption) (*ListArgumentsResponse, error) {
	out := new(ListArgumentsResponse)
	if err := c.invoke(ctx, TrialService_ListArguments_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) ListVerdicts(ctx context.Context, in *ListVerdictsRequest, opts ...grpc.CallOption) (*ListVerdictsResponse, error) {
	out := new(ListVerdictsResponse)
	if err := c.invoke(ctx, TrialService_ListVerdicts_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) GetVerdict(ctx context.Context, in *GetVerdictRequest, opts ...grpc.CallOption) (*GetVerdictResponse, error) {
	out := new(GetVerdictResponse)
	if err := c.invoke(ctx, TrialService_GetVerdict_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trialServiceClient) FinalizeCase(ctx context.Context, in *FinalizeCaseRequest, opts ...grpc.CallOption) (*FinalizeCaseResponse, error) {
	out := new(FinalizeCaseResponse)
	if err := c.invoke(ctx, TrialService_FinalizeCase_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
