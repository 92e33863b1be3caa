// Package d3d11 contains the Direct3D 11 COM bindings used by the transfer
// backend. Only the device, immediate context, resource and query methods
// the transfer paths call are bound.
package d3d11

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

type SAMPLE_DESC struct {
	Count   uint32
	Quality uint32
}

type TEXTURE2D_DESC struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         uint32
	SampleDesc     SAMPLE_DESC
	Usage          uint32
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

type BUFFER_DESC struct {
	ByteWidth           uint32
	Usage               uint32
	BindFlags           uint32
	CPUAccessFlags      uint32
	MiscFlags           uint32
	StructureByteStride uint32
}

type QUERY_DESC struct {
	Query     uint32
	MiscFlags uint32
}

type MAPPED_SUBRESOURCE struct {
	PData      uintptr
	RowPitch   uint32
	DepthPitch uint32
}

type BOX struct {
	Left   uint32
	Top    uint32
	Front  uint32
	Right  uint32
	Bottom uint32
	Back   uint32
}

type Device struct {
	Vtbl *struct {
		_IUnknownVTbl
		CreateBuffer                         uintptr
		CreateTexture1D                      uintptr
		CreateTexture2D                      uintptr
		CreateTexture3D                      uintptr
		CreateShaderResourceView             uintptr
		CreateUnorderedAccessView            uintptr
		CreateRenderTargetView               uintptr
		CreateDepthStencilView               uintptr
		CreateInputLayout                    uintptr
		CreateVertexShader                   uintptr
		CreateGeometryShader                 uintptr
		CreateGeometryShaderWithStreamOutput uintptr
		CreatePixelShader                    uintptr
		CreateHullShader                     uintptr
		CreateDomainShader                   uintptr
		CreateComputeShader                  uintptr
		CreateClassLinkage                   uintptr
		CreateBlendState                     uintptr
		CreateDepthStencilState              uintptr
		CreateRasterizerState                uintptr
		CreateSamplerState                   uintptr
		CreateQuery                          uintptr
		CreatePredicate                      uintptr
		CreateCounter                        uintptr
		CreateDeferredContext                uintptr
		OpenSharedResource                   uintptr
		CheckFormatSupport                   uintptr
		CheckMultisampleQualityLevels        uintptr
		CheckCounterInfo                     uintptr
		CheckCounter                         uintptr
		CheckFeatureSupport                  uintptr
		GetPrivateData                       uintptr
		SetPrivateData                       uintptr
		SetPrivateDataInterface              uintptr
		GetFeatureLevel                      uintptr
		GetCreationFlags                     uintptr
		GetDeviceRemovedReason               uintptr
		GetImmediateContext                  uintptr
		SetExceptionMode                     uintptr
		GetExceptionMode                     uintptr
	}
}

type DeviceContext struct {
	Vtbl *struct {
		_IUnknownVTbl
		GetDevice                                 uintptr
		GetPrivateData                            uintptr
		SetPrivateData                            uintptr
		SetPrivateDataInterface                   uintptr
		VSSetConstantBuffers                      uintptr
		PSSetShaderResources                      uintptr
		PSSetShader                               uintptr
		PSSetSamplers                             uintptr
		VSSetShader                               uintptr
		DrawIndexed                               uintptr
		Draw                                      uintptr
		Map                                       uintptr
		Unmap                                     uintptr
		PSSetConstantBuffers                      uintptr
		IASetInputLayout                          uintptr
		IASetVertexBuffers                        uintptr
		IASetIndexBuffer                          uintptr
		DrawIndexedInstanced                      uintptr
		DrawInstanced                             uintptr
		GSSetConstantBuffers                      uintptr
		GSSetShader                               uintptr
		IASetPrimitiveTopology                    uintptr
		VSSetShaderResources                      uintptr
		VSSetSamplers                             uintptr
		Begin                                     uintptr
		End                                       uintptr
		GetData                                   uintptr
		SetPredication                            uintptr
		GSSetShaderResources                      uintptr
		GSSetSamplers                             uintptr
		OMSetRenderTargets                        uintptr
		OMSetRenderTargetsAndUnorderedAccessViews uintptr
		OMSetBlendState                           uintptr
		OMSetDepthStencilState                    uintptr
		SOSetTargets                              uintptr
		DrawAuto                                  uintptr
		DrawIndexedInstancedIndirect              uintptr
		DrawInstancedIndirect                     uintptr
		Dispatch                                  uintptr
		DispatchIndirect                          uintptr
		RSSetState                                uintptr
		RSSetViewports                            uintptr
		RSSetScissorRects                         uintptr
		CopySubresourceRegion                     uintptr
		CopyResource                              uintptr
		UpdateSubresource                         uintptr
	}
}

type Resource struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type Texture2D struct {
	Vtbl *struct {
		_IUnknownVTbl
		GetDevice               uintptr
		GetPrivateData          uintptr
		SetPrivateData          uintptr
		SetPrivateDataInterface uintptr
		GetType                 uintptr
		SetEvictionPriority     uintptr
		GetEvictionPriority     uintptr
		GetDesc                 uintptr
	}
}

type Buffer struct {
	Vtbl *struct {
		_IUnknownVTbl
		GetDevice               uintptr
		GetPrivateData          uintptr
		SetPrivateData          uintptr
		SetPrivateDataInterface uintptr
		GetType                 uintptr
		SetEvictionPriority     uintptr
		GetEvictionPriority     uintptr
		GetDesc                 uintptr
	}
}

type Query struct {
	Vtbl *struct {
		_IUnknownVTbl
		GetDevice               uintptr
		GetPrivateData          uintptr
		SetPrivateData          uintptr
		SetPrivateDataInterface uintptr
		GetDataSize             uintptr
		GetDesc                 uintptr
	}
}

type _IUnknownVTbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

type ErrorCode struct {
	Name string
	Code uint32
}

func (e ErrorCode) Error() string {
	return fmt.Sprintf("%s: %#x", e.Name, e.Code)
}

var (
	d3d11 = windows.NewLazySystemDLL("d3d11.dll")

	_D3D11CreateDevice = d3d11.NewProc("D3D11CreateDevice")
)

const (
	SDK_VERSION          = 7
	DRIVER_TYPE_HARDWARE = 1

	S_FALSE = 1

	USAGE_DEFAULT = 0
	USAGE_STAGING = 3

	CPU_ACCESS_WRITE = 0x10000
	CPU_ACCESS_READ  = 0x20000

	MAP_READ          = 1
	MAP_WRITE         = 2
	MAP_WRITE_DISCARD = 4

	BIND_VERTEX_BUFFER    = 0x1
	BIND_INDEX_BUFFER     = 0x2
	BIND_CONSTANT_BUFFER  = 0x4
	BIND_SHADER_RESOURCE  = 0x8
	BIND_UNORDERED_ACCESS = 0x80

	QUERY_EVENT = 0
)

func CreateDevice(driverType uint32, flags uint32) (*Device, *DeviceContext, uint32, error) {
	var (
		dev     *Device
		ctx     *DeviceContext
		featLvl uint32
	)
	r, _, _ := _D3D11CreateDevice.Call(
		0,                                 // pAdapter
		uintptr(driverType),               // driverType
		0,                                 // Software
		uintptr(flags),                    // Flags
		0,                                 // pFeatureLevels
		0,                                 // FeatureLevels
		SDK_VERSION,                       // SDKVersion
		uintptr(unsafe.Pointer(&dev)),     // ppDevice
		uintptr(unsafe.Pointer(&featLvl)), // pFeatureLevel
		uintptr(unsafe.Pointer(&ctx)),     // ppImmediateContext
	)
	if r != 0 {
		return nil, nil, 0, ErrorCode{Name: "D3D11CreateDevice", Code: uint32(r)}
	}
	return dev, ctx, featLvl, nil
}

func (d *Device) CreateTexture2D(desc *TEXTURE2D_DESC) (*Texture2D, error) {
	var tex *Texture2D
	r, _, _ := syscall.Syscall6(
		d.Vtbl.CreateTexture2D,
		4,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(desc)),
		0, // pInitialData
		uintptr(unsafe.Pointer(&tex)),
		0, 0,
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateTexture2D", Code: uint32(r)}
	}
	return tex, nil
}

func (d *Device) CreateBuffer(desc *BUFFER_DESC) (*Buffer, error) {
	var buf *Buffer
	r, _, _ := syscall.Syscall6(
		d.Vtbl.CreateBuffer,
		4,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(desc)),
		0, // pInitialData
		uintptr(unsafe.Pointer(&buf)),
		0, 0,
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateBuffer", Code: uint32(r)}
	}
	return buf, nil
}

func (d *Device) CreateQuery(desc *QUERY_DESC) (*Query, error) {
	var query *Query
	r, _, _ := syscall.Syscall(
		d.Vtbl.CreateQuery,
		3,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(&query)),
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateQuery", Code: uint32(r)}
	}
	return query, nil
}

// GetImmediateContext returns the device's immediate context. The context
// is AddRef'd; the caller must release it.
func (d *Device) GetImmediateContext() *DeviceContext {
	var ctx *DeviceContext
	syscall.Syscall(
		d.Vtbl.GetImmediateContext,
		2,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(&ctx)),
		0,
	)
	return ctx
}

func (c *DeviceContext) Map(resource *Resource, subResource, mapType, mapFlags uint32) (MAPPED_SUBRESOURCE, error) {
	var resMap MAPPED_SUBRESOURCE
	r, _, _ := syscall.Syscall6(
		c.Vtbl.Map,
		6,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(resource)),
		uintptr(subResource),
		uintptr(mapType),
		uintptr(mapFlags),
		uintptr(unsafe.Pointer(&resMap)),
	)
	if r != 0 {
		return resMap, ErrorCode{Name: "DeviceContextMap", Code: uint32(r)}
	}
	return resMap, nil
}

func (c *DeviceContext) Unmap(resource *Resource, subResource uint32) {
	syscall.Syscall(
		c.Vtbl.Unmap,
		3,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(resource)),
		uintptr(subResource),
	)
}

func (c *DeviceContext) CopyResource(dst, src *Resource) {
	syscall.Syscall(
		c.Vtbl.CopyResource,
		3,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(dst)),
		uintptr(unsafe.Pointer(src)),
	)
}

func (c *DeviceContext) UpdateSubresource(res *Resource, dstBox *BOX, rowPitch, depthPitch uint32, data []byte) {
	syscall.Syscall9(
		c.Vtbl.UpdateSubresource,
		7,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(res)),
		0, // DstSubresource
		uintptr(unsafe.Pointer(dstBox)),
		uintptr(unsafe.Pointer(&data[0])),
		uintptr(rowPitch),
		uintptr(depthPitch),
		0, 0,
	)
}

func (c *DeviceContext) End(async *Query) {
	syscall.Syscall(
		c.Vtbl.End,
		2,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(async)),
		0,
	)
}

// GetData polls an event query. It returns true once the GPU has reached
// the query, false while the query is still pending (S_FALSE).
func (c *DeviceContext) GetData(async *Query) bool {
	r, _, _ := syscall.Syscall6(
		c.Vtbl.GetData,
		5,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(async)),
		0, // pData
		0, // DataSize
		0, // GetDataFlags
		0,
	)
	return r != S_FALSE
}

func (t *Texture2D) GetDesc() TEXTURE2D_DESC {
	var desc TEXTURE2D_DESC
	syscall.Syscall(
		t.Vtbl.GetDesc,
		2,
		uintptr(unsafe.Pointer(t)),
		uintptr(unsafe.Pointer(&desc)),
		0,
	)
	return desc
}

func (b *Buffer) GetDesc() BUFFER_DESC {
	var desc BUFFER_DESC
	syscall.Syscall(
		b.Vtbl.GetDesc,
		2,
		uintptr(unsafe.Pointer(b)),
		uintptr(unsafe.Pointer(&desc)),
		0,
	)
	return desc
}

func IUnknownRelease(obj unsafe.Pointer, releaseMethod uintptr) {
	syscall.Syscall(
		releaseMethod,
		1,
		uintptr(obj),
		0,
		0,
	)
}
