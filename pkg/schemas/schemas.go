// Package schemas maps resource types to the JSON schema URLs understood by
// yaml-language-server.
package schemas

import (
	"github.com/dippynark/kschema/pkg/classify"
	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/sets"
)

const (
	KubernetesSchemaURL    = "https://json.schemastore.org/kubernetes"
	KustomizationSchemaURL = "https://json.schemastore.org/kustomization"
	SOPSSchemaURL          = "https://json.schemastore.org/sops"

	fluxSchemaBaseURL = "https://k8s-schemas.bjw-s.dev/"

	// SOPSConfigFilename is the name of the SOPS creation rules file, which
	// is not a Kubernetes resource
	SOPSConfigFilename = ".sops.yaml"
)

// Resolver returns the schema URL for a file, or the empty string if there is
// none.
type Resolver interface {
	Resolve(resource *classify.Resource, filename string) string
}

// Rule maps resources it matches to a schema URL.
type Rule struct {
	Match func(schema.GroupVersionKind) bool
	URL   string
}

// FilenameRule maps a file with no resource type to a schema URL by its base
// name.
type FilenameRule struct {
	Filename string
	URL      string
}

// TableResolver resolves schemas from ordered rule tables. The first
// matching rule wins.
type TableResolver struct {
	Rules         []Rule
	FilenameRules []FilenameRule
}

var _ Resolver = &TableResolver{}

// NewTableResolver returns a resolver backed by DefaultRules and
// DefaultFilenameRules.
func NewTableResolver() *TableResolver {
	return &TableResolver{
		Rules:         DefaultRules,
		FilenameRules: DefaultFilenameRules,
	}
}

func (r *TableResolver) Resolve(resource *classify.Resource, filename string) string {
	if resource == nil || resource.APIVersion == "" || resource.Kind == "" {
		for _, rule := range r.FilenameRules {
			if rule.Filename == filename {
				return rule.URL
			}
		}
		return ""
	}

	gvk := resource.GroupVersionKind()
	for _, rule := range r.Rules {
		if rule.Match(gvk) {
			return rule.URL
		}
	}
	return ""
}

// CoreKinds are built-in Kubernetes kinds covered by the generic Kubernetes
// schema. Only the kind is significant when matching.
var CoreKinds = []schema.GroupVersionKind{
	appsv1.SchemeGroupVersion.WithKind("Deployment"),
	corev1.SchemeGroupVersion.WithKind("Service"),
	networkingv1.SchemeGroupVersion.WithKind("Ingress"),
	corev1.SchemeGroupVersion.WithKind("Secret"),
	corev1.SchemeGroupVersion.WithKind("ConfigMap"),
	corev1.SchemeGroupVersion.WithKind("Namespace"),
	corev1.SchemeGroupVersion.WithKind("ServiceAccount"),
	rbacv1.SchemeGroupVersion.WithKind("ClusterRole"),
	rbacv1.SchemeGroupVersion.WithKind("ClusterRoleBinding"),
	rbacv1.SchemeGroupVersion.WithKind("Role"),
	rbacv1.SchemeGroupVersion.WithKind("RoleBinding"),
	corev1.SchemeGroupVersion.WithKind("PersistentVolumeClaim"),
	corev1.SchemeGroupVersion.WithKind("PersistentVolume"),
	appsv1.SchemeGroupVersion.WithKind("StatefulSet"),
	appsv1.SchemeGroupVersion.WithKind("DaemonSet"),
	batchv1.SchemeGroupVersion.WithKind("CronJob"),
	batchv1.SchemeGroupVersion.WithKind("Job"),
	networkingv1.SchemeGroupVersion.WithKind("NetworkPolicy"),
	corev1.SchemeGroupVersion.WithKind("ResourceQuota"),
	corev1.SchemeGroupVersion.WithKind("LimitRange"),
}

// DefaultRules is the resolution table. Order matters: exact GVK rules are
// consulted before the core kind fallback.
var DefaultRules = []Rule{
	exact("kustomize.toolkit.fluxcd.io/v1", "Kustomization", fluxSchemaBaseURL+"kustomize.toolkit.fluxcd.io/kustomization_v1.json"),
	exact("kustomize.config.k8s.io/v1beta1", "Kustomization", KustomizationSchemaURL),
	exact("kustomize.config.k8s.io/v1alpha1", "Component", KustomizationSchemaURL),
	exact("helm.toolkit.fluxcd.io/v2", "HelmRelease", fluxSchemaBaseURL+"helm.toolkit.fluxcd.io/helmrelease_v2.json"),
	exact("source.toolkit.fluxcd.io/v1", "HelmRepository", fluxSchemaBaseURL+"source.toolkit.fluxcd.io/helmrepository_v1.json"),
	exact("source.toolkit.fluxcd.io/v1", "OCIRepository", fluxSchemaBaseURL+"source.toolkit.fluxcd.io/ocirepository_v1.json"),
	exact("source.toolkit.fluxcd.io/v1", "GitRepository", fluxSchemaBaseURL+"source.toolkit.fluxcd.io/gitrepository_v1.json"),
	kindIn(CoreKinds, KubernetesSchemaURL),
}

var DefaultFilenameRules = []FilenameRule{
	{Filename: SOPSConfigFilename, URL: SOPSSchemaURL},
}

// exact matches a single apiVersion and kind
func exact(apiVersion, kind, url string) Rule {
	want := schema.FromAPIVersionAndKind(apiVersion, kind)
	return Rule{
		Match: func(gvk schema.GroupVersionKind) bool {
			return gvk == want
		},
		URL: url,
	}
}

// kindIn matches any resource whose kind is one of gvks, whatever its group
// or version
func kindIn(gvks []schema.GroupVersionKind, url string) Rule {
	kinds := sets.New[string]()
	for _, gvk := range gvks {
		kinds.Insert(gvk.Kind)
	}
	return Rule{
		Match: func(gvk schema.GroupVersionKind) bool {
			return kinds.Has(gvk.Kind)
		},
		URL: url,
	}
}
