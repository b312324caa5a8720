// Package cloudinary construye URLs de entrega de Cloudinary. Las imágenes se
// suben desde el frontend (upload widget); el backend solo guarda y transforma URLs.
package cloudinary

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	deliveryHost = "res.cloudinary.com"
	uploadMarker = "/image/upload/"
)

// IsCloudinaryURL indica si raw apunta al CDN de Cloudinary.
func IsCloudinaryURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, deliveryHost) && strings.Contains(u.Path, uploadMarker)
}

// ValidImageURL acepta URLs absolutas http(s) con host (Cloudinary u otro CDN).
func ValidImageURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "https" || u.Scheme == "http") && u.Host != ""
}

// DeliveryURL arma la URL pública de un asset a partir de su public ID.
func DeliveryURL(cloudName, publicID string) string {
	return fmt.Sprintf("https://%s/%s%s%s", deliveryHost, cloudName, uploadMarker, strings.TrimPrefix(publicID, "/"))
}

// Thumbnail inserta una transformación de recorte (c_fill) en una URL de Cloudinary.
// Las URLs de otros hosts se devuelven sin cambios.
func Thumbnail(raw string, width, height int) string {
	if !IsCloudinaryURL(raw) {
		return raw
	}
	i := strings.Index(raw, uploadMarker)
	rest := raw[i+len(uploadMarker):]
	tr := fmt.Sprintf("c_fill,w_%d,h_%d,q_auto,f_auto/", width, height)
	return raw[:i+len(uploadMarker)] + tr + rest
}
