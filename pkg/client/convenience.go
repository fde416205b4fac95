package client

import (
	"context"

	"github.com/go-httpcore/httpcore/pkg/header"
	"github.com/go-httpcore/httpcore/pkg/message"
	"github.com/go-httpcore/httpcore/pkg/uri"
)

// Get, Head, Post, Put, Patch, Delete, Options, and Trace are thin
// convenience wrappers over Send. Each builds a bodiless or bodied
// request as appropriate and hands the response to handler exactly once.

func Get[T any](ctx context.Context, c *HttpClient, target uri.Uri, handler func(message.HttpResponse) (T, error)) (T, error) {
	return Send(ctx, c, message.NewRequest(message.MethodGet, target), handler)
}

func Head[T any](ctx context.Context, c *HttpClient, target uri.Uri, handler func(message.HttpResponse) (T, error)) (T, error) {
	return Send(ctx, c, message.NewRequest(message.MethodHead, target), handler)
}

func Options[T any](ctx context.Context, c *HttpClient, target uri.Uri, handler func(message.HttpResponse) (T, error)) (T, error) {
	return Send(ctx, c, message.NewRequest(message.MethodOptions, target), handler)
}

func Trace[T any](ctx context.Context, c *HttpClient, target uri.Uri, handler func(message.HttpResponse) (T, error)) (T, error) {
	return Send(ctx, c, message.NewRequest(message.MethodTrace, target), handler)
}

func Post[T any](ctx context.Context, c *HttpClient, target uri.Uri, body message.Entity, contentType string, handler func(message.HttpResponse) (T, error)) (T, error) {
	return sendWithBody(ctx, c, message.MethodPost, target, body, contentType, handler)
}

func Put[T any](ctx context.Context, c *HttpClient, target uri.Uri, body message.Entity, contentType string, handler func(message.HttpResponse) (T, error)) (T, error) {
	return sendWithBody(ctx, c, message.MethodPut, target, body, contentType, handler)
}

func Patch[T any](ctx context.Context, c *HttpClient, target uri.Uri, body message.Entity, contentType string, handler func(message.HttpResponse) (T, error)) (T, error) {
	return sendWithBody(ctx, c, message.MethodPatch, target, body, contentType, handler)
}

func Delete[T any](ctx context.Context, c *HttpClient, target uri.Uri, handler func(message.HttpResponse) (T, error)) (T, error) {
	return Send(ctx, c, message.NewRequest(message.MethodDelete, target), handler)
}

func sendWithBody[T any](ctx context.Context, c *HttpClient, method message.RequestMethod, target uri.Uri, body message.Entity, contentType string, handler func(message.HttpResponse) (T, error)) (T, error) {
	req := message.NewRequest(method, target)
	req.Body = body
	if contentType != "" {
		req = req.PutHeaders(header.Header{Name: "Content-Type", Value: contentType})
	}
	return Send(ctx, c, req, handler)
}
