// Package proto describes the shopfront.v1.Shopfront gRPC service. Requests
// and responses are google.protobuf.Struct messages.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "shopfront.v1.Shopfront"

const (
	Shopfront_Signup_FullMethodName         = "/shopfront.v1.Shopfront/Signup"
	Shopfront_Login_FullMethodName          = "/shopfront.v1.Shopfront/Login"
	Shopfront_Logout_FullMethodName         = "/shopfront.v1.Shopfront/Logout"
	Shopfront_CurrentUser_FullMethodName    = "/shopfront.v1.Shopfront/CurrentUser"
	Shopfront_UpdateProfile_FullMethodName  = "/shopfront.v1.Shopfront/UpdateProfile"
	Shopfront_GetView_FullMethodName        = "/shopfront.v1.Shopfront/GetView"
	Shopfront_SetQuery_FullMethodName       = "/shopfront.v1.Shopfront/SetQuery"
	Shopfront_Scroll_FullMethodName         = "/shopfront.v1.Shopfront/Scroll"
	Shopfront_SelectProduct_FullMethodName  = "/shopfront.v1.Shopfront/SelectProduct"
	Shopfront_ClearSelection_FullMethodName = "/shopfront.v1.Shopfront/ClearSelection"
	Shopfront_Reload_FullMethodName         = "/shopfront.v1.Shopfront/Reload"
	Shopfront_Facets_FullMethodName         = "/shopfront.v1.Shopfront/Facets"
)

// ShopfrontServer is the server API for the Shopfront service.
type ShopfrontServer interface {
	Signup(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Logout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CurrentUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetView(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetQuery(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Scroll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SelectProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearSelection(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reload(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Facets(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(ShopfrontServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ShopfrontServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ShopfrontServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Shopfront_ServiceDesc is the grpc.ServiceDesc for the Shopfront service.
var Shopfront_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ShopfrontServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Signup", ShopfrontServer.Signup),
		unaryMethod("Login", ShopfrontServer.Login),
		unaryMethod("Logout", ShopfrontServer.Logout),
		unaryMethod("CurrentUser", ShopfrontServer.CurrentUser),
		unaryMethod("UpdateProfile", ShopfrontServer.UpdateProfile),
		unaryMethod("GetView", ShopfrontServer.GetView),
		unaryMethod("SetQuery", ShopfrontServer.SetQuery),
		unaryMethod("Scroll", ShopfrontServer.Scroll),
		unaryMethod("SelectProduct", ShopfrontServer.SelectProduct),
		unaryMethod("ClearSelection", ShopfrontServer.ClearSelection),
		unaryMethod("Reload", ShopfrontServer.Reload),
		unaryMethod("Facets", ShopfrontServer.Facets),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shopfront/v1/shopfront.proto",
}

// RegisterShopfrontServer registers srv on s.
func RegisterShopfrontServer(s grpc.ServiceRegistrar, srv ShopfrontServer) {
	s.RegisterService(&Shopfront_ServiceDesc, srv)
}

// ShopfrontClient is the client API for the Shopfront service.
type ShopfrontClient struct {
	cc grpc.ClientConnInterface
}

func NewShopfrontClient(cc grpc.ClientConnInterface) *ShopfrontClient {
	return &ShopfrontClient{cc: cc}
}

// Call invokes the given full method with in and returns the response.
func (c *ShopfrontClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
