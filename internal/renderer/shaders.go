package renderer

const pbrVertexSrc = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 WorldPos;
out vec3 Normal;

void main() {
    vec4 world = model * vec4(aPos, 1.0);
    WorldPos = world.xyz;
    Normal = mat3(model) * aNormal;
    gl_Position = projection * view * world;
}
`

const pbrFragmentSrc = `#version 410 core
in vec3 WorldPos;
in vec3 Normal;

uniform vec4 albedo;
uniform float roughness;
uniform float metallic;
uniform vec3 lightDir;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform vec3 camPos;

out vec4 FragColor;

const float PI = 3.14159265359;

float distributionGGX(vec3 N, vec3 H, float rough) {
    float a = rough * rough;
    float a2 = a * a;
    float NdotH = max(dot(N, H), 0.0);
    float denom = NdotH * NdotH * (a2 - 1.0) + 1.0;
    return a2 / (PI * denom * denom);
}

float geometrySchlickGGX(float NdotV, float rough) {
    float r = rough + 1.0;
    float k = (r * r) / 8.0;
    return NdotV / (NdotV * (1.0 - k) + k);
}

vec3 fresnelSchlick(float cosTheta, vec3 F0) {
    return F0 + (1.0 - F0) * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}

void main() {
    vec3 N = normalize(Normal);
    vec3 V = normalize(camPos - WorldPos);
    vec3 L = normalize(-lightDir);
    vec3 H = normalize(V + L);

    vec3 base = albedo.rgb;
    vec3 F0 = mix(vec3(0.04), base, metallic);
    vec3 radiance = lightColor * lightIntensity;

    float NDF = distributionGGX(N, H, roughness);
    float G = geometrySchlickGGX(max(dot(N, V), 0.0), roughness)
            * geometrySchlickGGX(max(dot(N, L), 0.0), roughness);
    vec3 F = fresnelSchlick(max(dot(H, V), 0.0), F0);

    float NdotL = max(dot(N, L), 0.0);
    vec3 specular = (NDF * G * F) /
        (4.0 * max(dot(N, V), 0.0) * NdotL + 0.0001);
    vec3 kD = (vec3(1.0) - F) * (1.0 - metallic);

    vec3 color = (kD * base / PI + specular) * radiance * NdotL;
    color += base * 0.03; // flat ambient term, no skybox

    FragColor = vec4(color, 1.0);
}
`

const tonemapVertexSrc = `#version 410 core
out vec2 TexCoord;

// Fullscreen triangle from gl_VertexID, no vertex buffer needed.
void main() {
    vec2 pos = vec2(float((gl_VertexID << 1) & 2), float(gl_VertexID & 2));
    TexCoord = pos;
    gl_Position = vec4(pos * 2.0 - 1.0, 0.0, 1.0);
}
`

const tonemapFragmentSrc = `#version 410 core
in vec2 TexCoord;

uniform sampler2D hdrColor;

out vec4 FragColor;

// ACES filmic approximation (Narkowicz).
vec3 aces(vec3 x) {
    const float a = 2.51;
    const float b = 0.03;
    const float c = 2.43;
    const float d = 0.59;
    const float e = 0.14;
    return clamp((x * (a * x + b)) / (x * (c * x + d) + e), 0.0, 1.0);
}

void main() {
    vec3 hdr = texture(hdrColor, TexCoord).rgb;
    vec3 mapped = aces(hdr);
    mapped = pow(mapped, vec3(1.0 / 2.2));
    FragColor = vec4(mapped, 1.0);
}
`
